package game

import (
	"errors"
	"fmt"

	"monstercollector/internal/config"
)

var (
	ErrNotEnoughMoney = errors.New("not enough money")
	ErrNotForSale     = errors.New("the shop does not sell that")
)

// ShopOpen reports whether the player is standing in the shop.
func (s *Session) ShopOpen() bool {
	return s.shopOpen
}

func (s *Session) CloseShop() {
	s.shopOpen = false
}

// Stock lists what the shop sells.
func (s *Session) Stock() []config.ShopEntry {
	return s.cfg.Shop.Stock
}

// Buy purchases one item. A failed purchase changes nothing.
func (s *Session) Buy(item string) error {
	if s.mode == ModeInEncounter {
		return ErrInEncounter
	}
	price, ok := s.cfg.GetPrice(item)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotForSale, item)
	}
	if s.Player.Money < price {
		return fmt.Errorf("%w: %s costs $%d", ErrNotEnoughMoney, item, price)
	}
	s.Player.Money -= price
	s.Player.AddItem(item, 1)
	s.addMessage(fmt.Sprintf("You bought a %s for $%d.", item, price))
	return nil
}
