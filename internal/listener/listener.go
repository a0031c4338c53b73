// Package listener serves the plain-text command protocol over TCP. One
// connection is handled at a time and, within a connection, one command
// runs to completion before the next line is read. A slow report therefore
// blocks pending commands; that is the intended model, not an oversight.
package listener

import (
	"bufio"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/hpungsan/texpulse/internal/config"
	"github.com/hpungsan/texpulse/internal/errors"
	"github.com/hpungsan/texpulse/internal/render"
	"github.com/hpungsan/texpulse/internal/report"
)

// Server answers line commands with rendered reports. Every response ends
// with a blank line so clients can frame it.
type Server struct {
	db  *sql.DB
	cfg *config.Config
	ln  net.Listener
}

// New creates a command server backed by the given snapshot database and
// project configuration.
func New(db *sql.DB, cfg *config.Config) *Server {
	return &Server{db: db, cfg: cfg}
}

// Listen binds the server to addr. An addr with port 0 binds an ephemeral
// port; Addr reports the actual one.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound address. Empty before Listen.
func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Serve accepts connections one at a time until Close. Commands within a
// connection are processed serially.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if stderrors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.handle(conn)
	}
}

// ListenAndServe binds to addr and serves until Close.
func (s *Server) ListenAndServe(addr string) error {
	if err := s.Listen(addr); err != nil {
		return err
	}
	log.Printf("command listener on %s", s.Addr())
	return s.Serve()
}

// Close stops accepting connections. An in-flight command still runs to
// completion.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}

		response, err := s.dispatch(command)
		if err != nil {
			log.Printf("command %q failed: %v", command, err)
			response = fmt.Sprintf("error: %s\n", err)
		}
		if _, err := fmt.Fprintf(conn, "%s\n", response); err != nil {
			log.Printf("write to %s failed: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

// dispatch runs one command and returns the rendered response. An unknown
// command is answered, not dropped; the connection stays usable.
func (s *Server) dispatch(command string) (string, error) {
	switch command {
	case "toc":
		out, err := report.Outline(s.db, s.cfg, report.OutlineInput{})
		if err != nil {
			return "", err
		}
		return render.Toc(out), nil

	case "lof":
		out, err := report.Figures(s.cfg)
		if err != nil {
			return "", err
		}
		return render.Floats("List of Figures", out.Items), nil

	case "lot":
		out, err := report.Tables(s.cfg)
		if err != nil {
			return "", err
		}
		return render.Floats("List of Tables", out.Items), nil

	case "unu", "unu refs":
		out, err := report.UnusedReferences(s.cfg)
		if err != nil {
			return "", err
		}
		return render.Enumeration("Unused references", out.Keys), nil

	case "unu figs":
		out, err := report.UnusedFigures(s.cfg)
		if err != nil {
			return "", err
		}
		return render.Enumeration("Unused figures", out.Keys), nil

	case "und":
		out, err := report.UndefinedReferences(s.cfg)
		if err != nil {
			return "", err
		}
		return render.Enumeration("Undefined references", out.Keys), nil

	case "backup":
		out, err := report.Backup(s.db, s.cfg, report.BackupInput{})
		if err != nil {
			return "", err
		}
		if out.Created {
			return fmt.Sprintf("snapshot created for %s\n", out.Day), nil
		}
		return fmt.Sprintf("snapshot already exists for %s\n", out.Day), nil

	default:
		return errors.NewUnknownCommand(command).Message + "\n", nil
	}
}
