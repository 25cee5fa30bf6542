// Package server exposes the site over SSH (the interactive pages) and
// HTTP (composited skins and the task base).
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"termfolio/internal/app"
	"termfolio/internal/render"
)

// SSHServer wraps the SSH listener and hub integration.
type SSHServer struct {
	hub     *app.Hub
	addr    string
	hostKey string
	log     *slog.Logger
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr, hostKey string, hub *app.Hub, logger *slog.Logger) *SSHServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SSHServer{
		hub:     hub,
		addr:    addr,
		hostKey: hostKey,
		log:     logger,
	}
}

// Start listens for SSH connections until ctx is done.
func (s *SSHServer) Start(ctx context.Context) error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	s.log.Info("ssh server listening", "addr", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh server: %w", err)
	}
	return nil
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()

	// Terminal dimensions
	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	visitorID, frameCh := s.hub.AddVisitor(username, termW, termH)

	s.log.Info("visitor connected", "user", username, "id", visitorID, "remote", sess.RemoteAddr().String())
	defer func() {
		s.hub.RemoveVisitor(visitorID)
		s.log.Info("visitor disconnected", "user", username, "id", visitorID)
	}()

	engine := render.NewEngine(termW, termH)

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	inputCh := s.hub.InputChan()
	quitCh := make(chan struct{})
	var quitOnce sync.Once
	quit := func() { quitOnce.Do(func() { close(quitCh) }) }

	// Goroutine: read input
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				quit()
				return
			}
			for _, ev := range ParseInput(buf[:n]) {
				if ev.Action == app.ActionQuit {
					quit()
					return
				}
				ev.VisitorID = visitorID
				select {
				case inputCh <- ev:
				default:
				}
			}
		}
	}()

	// Goroutine: handle window resizes
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()

			select {
			case inputCh <- app.InputEvent{VisitorID: visitorID, Action: app.ActionResize, Width: win.Width, Height: win.Height}:
			case <-sess.Context().Done():
				return
			}
		}
	}()

	// Main render loop: read from frame channel
	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case frame, ok := <-frameCh:
			if !ok || frame.Quit {
				return
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			output := engine.Render(frame.View, w, h)
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// ParseInput converts raw terminal bytes into input events: arrow keys (CSI
// and SS3 forms), Enter, Tab, Backspace, a lone Esc, Ctrl-C and printable
// runes. Unknown escape sequences are skipped.
func ParseInput(data []byte) []app.InputEvent {
	var events []app.InputEvent
	add := func(a app.Action) {
		events = append(events, app.InputEvent{Action: a})
	}

	i := 0
	for i < len(data) {
		if data[i] == 0x1b {
			// Check for escape sequences (arrow keys)
			if i+2 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				j := i + 2
				if data[i+1] == '[' {
					// skip parameter bytes of sequences such as "\x1b[3~"
					for j < len(data) && data[j] >= 0x30 && data[j] <= 0x3f {
						j++
					}
				}
				if j < len(data) && j == i+2 {
					switch data[j] {
					case 'A':
						add(app.ActionUp)
					case 'B':
						add(app.ActionDown)
					case 'C':
						add(app.ActionRight)
					case 'D':
						add(app.ActionLeft)
					}
				}
				i = j + 1
				continue
			}
			add(app.ActionBack)
			i++
			continue
		}

		// Single byte inputs
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 3: // Ctrl-C
			add(app.ActionQuit)
		case '\r', '\n':
			add(app.ActionEnter)
		case '\t':
			add(app.ActionTab)
		case 0x7f, 0x08:
			add(app.ActionBackspace)
		default:
			if r >= ' ' && r != utf8.RuneError {
				events = append(events, app.InputEvent{Action: app.ActionRune, Rune: r})
			}
		}
		i += size
	}
	return events
}
