// Package server hosts the terminal frontend over SSH. Every connection gets
// its own game session; the SSH username is the profile name.
package server

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gliderlabs/ssh"

	tea "github.com/charmbracelet/bubbletea"

	"monstercollector/internal/game"
	"monstercollector/internal/tui"
)

var ErrAlreadyPlaying = errors.New("that profile is already connected")

// SSHServer wraps the SSH listener and the shared game resources.
type SSHServer struct {
	addr    string
	hostKey string
	res     game.Resources
	store   *game.ProfileStore

	mu     sync.Mutex
	active map[string]bool
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, res game.Resources, store *game.ProfileStore) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		res:     res,
		store:   store,
		active:  make(map[string]bool),
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

// openSession loads the user's profile, creating it with a starter on the
// first visit. A profile can only be played from one connection at a time.
func (s *SSHServer) openSession(name string) (*game.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[name] {
		return nil, false, fmt.Errorf("%w: %s", ErrAlreadyPlaying, name)
	}

	var (
		session *game.Session
		err     error
		created bool
	)
	if s.store.Exists(name) {
		session, err = game.LoadProfileSession(s.res, s.store, name)
	} else {
		session, err = game.NewProfileSession(s.res, s.store, name)
		created = true
	}
	if err != nil {
		return nil, false, err
	}
	s.active[name] = true
	return session, created, nil
}

func (s *SSHServer) closeSession(session *game.Session) {
	if err := session.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
	s.mu.Lock()
	delete(s.active, session.Name())
	s.mu.Unlock()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	session, created, err := s.openSession(username)
	if err != nil {
		fmt.Fprintf(sess, "Error: %s\n", game.Narrate(err))
		log.Printf("Rejected %q: %v", username, err)
		return
	}
	if created {
		log.Printf("New profile: %s", username)
	}
	log.Printf("Player connected: %s", username)
	defer func() {
		s.closeSession(session)
		log.Printf("Player disconnected: %s", username)
	}()

	program := tea.NewProgram(tui.NewModel(session),
		tea.WithInput(sess),
		tea.WithOutput(sess),
		tea.WithAltScreen(),
	)

	// Goroutine: handle window resizes
	go func() {
		program.Send(tea.WindowSizeMsg{Width: ptyReq.Window.Width, Height: ptyReq.Window.Height})
		for win := range winCh {
			program.Send(tea.WindowSizeMsg{Width: win.Width, Height: win.Height})
		}
	}()

	if _, err := program.Run(); err != nil {
		log.Printf("Session %s ended with error: %v", username, err)
	}
}
