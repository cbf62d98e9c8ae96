package monster

import (
	"os"
	"testing"
)

var testCatalog *Catalog

func TestMain(m *testing.M) {
	testCatalog = MustLoadCatalog("../../assets/monsters.yaml")
	os.Exit(m.Run())
}
