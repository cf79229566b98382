// Package server exposes a bptree.Tree over the Redis protocol.
package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/redcon"

	"bptree"
)

var errQuit = errors.New("quit")

func newWrongNumberOfArgsError(cmd string) error {
	return fmt.Errorf("ERR wrong number of arguments for '%s' command", cmd)
}

type cmdHandler func(store *Store, args [][]byte) (any, error)

var supportedCommands = map[string]cmdHandler{
	"ping":   ping,
	"quit":   quit,
	"get":    get,
	"set":    set,
	"setnx":  setnx,
	"del":    del,
	"exists": exists,
	"scan":   scan,
	"dbsize": dbsize,
}

// Server accepts RESP connections and executes commands against a Store.
type Server struct {
	addr   string
	store  *Store
	logger bptree.Logger
	srv    *redcon.Server
}

// New creates a server listening on addr once ListenAndServe is called.
func New(addr string, store *Store, logger bptree.Logger) *Server {
	if logger == nil {
		logger = bptree.DiscardLogger{}
	}

	s := &Server{addr: addr, store: store, logger: logger}
	s.srv = redcon.NewServer(addr, s.handle, s.accept, s.closed)
	return s
}

// ListenAndServe serves connections until Close is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("server listening", "addr", s.addr)
	return s.srv.ListenAndServe()
}

// Close stops accepting connections and closes the listener.
func (s *Server) Close() error {
	return s.srv.Close()
}

func (s *Server) accept(conn redcon.Conn) bool {
	s.logger.Debug("connection accepted", "remote", conn.RemoteAddr())
	return true
}

func (s *Server) closed(conn redcon.Conn, err error) {
	if err != nil {
		s.logger.Warn("connection closed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	s.logger.Debug("connection closed", "remote", conn.RemoteAddr())
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	res, err := execute(s.store, cmd.Args)
	switch {
	case errors.Is(err, errQuit):
		conn.WriteString("OK")
		_ = conn.Close()
	case errors.Is(err, bptree.ErrKeyNotFound):
		conn.WriteNull()
	case err != nil:
		conn.WriteError(err.Error())
	default:
		conn.WriteAny(res)
	}
}

// execute runs a single command. The reply is in the form accepted by
// redcon.Conn.WriteAny.
func execute(store *Store, args [][]byte) (any, error) {
	if len(args) == 0 {
		return nil, errors.New("ERR empty command")
	}

	command := strings.ToLower(string(args[0]))
	handler, ok := supportedCommands[command]
	if !ok {
		return nil, fmt.Errorf("ERR unsupported command '%s'", command)
	}
	return handler(store, args[1:])
}

func ping(_ *Store, args [][]byte) (any, error) {
	switch len(args) {
	case 0:
		return redcon.SimpleString("PONG"), nil
	case 1:
		return args[0], nil
	default:
		return nil, newWrongNumberOfArgsError("ping")
	}
}

func quit(_ *Store, _ [][]byte) (any, error) {
	return nil, errQuit
}

func get(store *Store, args [][]byte) (any, error) {
	if len(args) != 1 {
		return nil, newWrongNumberOfArgsError("get")
	}
	return store.Get(string(args[0]))
}

func set(store *Store, args [][]byte) (any, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("set")
	}
	store.Set(string(args[0]), args[1])
	return redcon.SimpleString("OK"), nil
}

func setnx(store *Store, args [][]byte) (any, error) {
	if len(args) != 2 {
		return nil, newWrongNumberOfArgsError("setnx")
	}
	if store.SetNX(string(args[0]), args[1]) {
		return redcon.SimpleInt(1), nil
	}
	return redcon.SimpleInt(0), nil
}

func del(store *Store, args [][]byte) (any, error) {
	if len(args) == 0 {
		return nil, newWrongNumberOfArgsError("del")
	}

	removed := 0
	for _, key := range args {
		if store.Delete(string(key)) {
			removed++
		}
	}
	return redcon.SimpleInt(removed), nil
}

func exists(store *Store, args [][]byte) (any, error) {
	if len(args) == 0 {
		return nil, newWrongNumberOfArgsError("exists")
	}

	found := 0
	for _, key := range args {
		if store.Has(string(key)) {
			found++
		}
	}
	return redcon.SimpleInt(found), nil
}

// scan replies with a flat key, value array over [from, to]. An optional
// trailing COUNT n bounds the number of pairs.
func scan(store *Store, args [][]byte) (any, error) {
	limit := -1
	if n := len(args); n >= 2 && strings.EqualFold(string(args[n-2]), "count") {
		count, err := strconv.Atoi(string(args[n-1]))
		if err != nil || count < 0 {
			return nil, errors.New("ERR value is not an integer or out of range")
		}
		limit = count
		args = args[:n-2]
	}
	if len(args) > 2 {
		return nil, newWrongNumberOfArgsError("scan")
	}

	var opts []bptree.ScanOption[string]
	if len(args) > 0 {
		opts = append(opts, bptree.From(string(args[0])))
	}
	if len(args) > 1 {
		opts = append(opts, bptree.To(string(args[1])))
	}

	reply := []any{}
	store.Scan(func(key string, value []byte) bool {
		if limit >= 0 && len(reply)/2 >= limit {
			return false
		}
		reply = append(reply, []byte(key), value)
		return true
	}, opts...)
	return reply, nil
}

func dbsize(store *Store, args [][]byte) (any, error) {
	if len(args) != 0 {
		return nil, newWrongNumberOfArgsError("dbsize")
	}
	return redcon.SimpleInt(store.Len()), nil
}
