// Package relay serves raw AIS sentences to TCP clients. Every line
// handed to Broadcast is fanned out to all connected clients; a slow
// client loses its own backlog without affecting the others.
package relay

import (
	"log"
	"net"
	"strconv"
	"sync"
)

// Config holds the listener settings.
type Config struct {
	// Host is the interface to bind; empty means all interfaces.
	Host string
	// Port is the TCP listen port.
	Port int
	// MaxClients is the connection ceiling. Connections beyond it are
	// accepted and closed immediately.
	MaxClients int
	// QueueLen is the per-client send queue, in sentences. A client whose
	// queue is full drops the oldest pending sentences.
	QueueLen int
}

// DefaultConfig returns the stock relay settings.
func DefaultConfig() Config {
	return Config{Port: 8090, MaxClients: 1000, QueueLen: 64}
}

type client struct {
	conn net.Conn
	send chan string
}

// Server is a running sentence relay.
type Server struct {
	cfg      Config
	listener net.Listener

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	wg sync.WaitGroup
}

// Listen binds the listener and starts the accept loop.
func Listen(cfg Config) (*Server, error) {
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = DefaultConfig().MaxClients
	}
	if cfg.QueueLen <= 0 {
		cfg.QueueLen = DefaultConfig().QueueLen
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		listener: ln,
		clients:  make(map[*client]struct{}),
	}
	s.wg.Add(1)
	go s.acceptLoop()
	return s, nil
}

// Addr returns the bound listener address.
func (s *Server) Addr() net.Addr { return s.listener.Addr() }

// ClientCount returns the number of connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Broadcast queues one sentence line for every connected client. The line
// is sent verbatim with a trailing CRLF.
func (s *Server) Broadcast(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- line:
		default:
			// Queue full: drop the oldest entry to make room, then retry.
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- line:
			default:
			}
		}
	}
}

// Close stops the accept loop and disconnects all clients.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for c := range s.clients {
		close(c.send)
		delete(s.clients, c)
	}
	s.mu.Unlock()

	err := s.listener.Close()
	s.wg.Wait()
	return err
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Listener closed.
			return
		}

		s.mu.Lock()
		if s.closed || len(s.clients) >= s.cfg.MaxClients {
			s.mu.Unlock()
			conn.Close()
			continue
		}
		c := &client{conn: conn, send: make(chan string, s.cfg.QueueLen)}
		s.clients[c] = struct{}{}
		s.mu.Unlock()

		log.Printf("relay: client %s connected (%d active)", conn.RemoteAddr(), s.ClientCount())
		s.wg.Add(1)
		go s.writeLoop(c)
	}
}

func (s *Server) writeLoop(c *client) {
	defer s.wg.Done()
	defer c.conn.Close()
	for line := range c.send {
		if _, err := c.conn.Write([]byte(line + "\r\n")); err != nil {
			s.drop(c)
			return
		}
	}
}

// drop removes a client after a write failure. Close may have removed it
// already.
func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
		log.Printf("relay: client %s disconnected (%d active)", c.conn.RemoteAddr(), len(s.clients))
	}
}
