// Package shell implements a small filesystem-like command interpreter in
// which every directory stores its entries in a bptree.Tree.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
	"github.com/fatih/color"

	"bptree"
)

var (
	// errExit is returned by the exit command to stop Run.
	errExit = errors.New("exit")

	// errUsage is replaced with the command's usage line by Exec.
	errUsage = errors.New("usage")
)

type command struct {
	usage string
	help  string
	run   func(s *Shell, args []string) error
}

var commands = map[string]command{
	"ls":    {"ls [path]", "list a directory", (*Shell).ls},
	"mkdir": {"mkdir <path>", "create a directory", (*Shell).mkdir},
	"touch": {"touch <path>", "create an empty file", (*Shell).touch},
	"cd":    {"cd [path]", "change directory, .. for parent, / or ~ for root", (*Shell).cd},
	"rm":    {"rm <path>", "remove a file or an empty directory", (*Shell).rm},
	"pwd":   {"pwd", "print the working directory", (*Shell).pwd},
	"stat":  {"stat [path]", "show the tree behind a directory", (*Shell).stat},
	"fsck":  {"fsck", "verify every directory tree", (*Shell).fsck},
	"exit":  {"exit", "leave the shell", func(*Shell, []string) error { return errExit }},
}

func init() {
	commands["help"] = command{"help", "show this help", (*Shell).help}
}

// Shell is a command interpreter over an in-memory directory hierarchy.
type Shell struct {
	opts options
	root *Entry
	cwd  []string // Components from the root, empty at the root

	// Resolved absolute paths. Purged whenever an entry is removed.
	cache    *freelru.LRU[string, *Entry]
	dirColor *color.Color
}

func hashPath(path string) uint32 {
	return uint32(xxhash.Sum64String(path))
}

// New creates a shell with an empty root directory.
func New(opts ...Option) (*Shell, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	root, err := newDir("", o.order, o.logger)
	if err != nil {
		return nil, err
	}

	cache, err := freelru.New[string, *Entry](o.cacheSize, hashPath)
	if err != nil {
		return nil, fmt.Errorf("path cache: %w", err)
	}

	dirColor := color.New(color.FgBlue, color.Bold)
	if !o.color {
		dirColor.DisableColor()
	}

	return &Shell{
		opts:     o,
		root:     root,
		cache:    cache,
		dirColor: dirColor,
	}, nil
}

// Prompt returns the prompt for the current directory, e.g. "bptree:~/a/b$ ".
func (s *Shell) Prompt() string {
	return fmt.Sprintf("bptree:%s$ ", strings.Join(append([]string{"~"}, s.cwd...), "/"))
}

// Run reads commands from in until exit or end of input. The prompt is only
// printed when interactive is set. Command errors are reported on the output
// and do not stop the loop.
func (s *Shell) Run(in io.Reader, interactive bool) error {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(s.opts.out, s.Prompt())
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(s.opts.out)
			}
			return scanner.Err()
		}

		err := s.Exec(scanner.Text())
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.opts.out, err)
		}
	}
}

// Exec runs a single command line.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknown, name)
	}

	err := cmd.run(s, fields[1:])
	if errors.Is(err, errUsage) {
		err = &usageError{cmd.usage}
	}
	if err != nil && !errors.Is(err, errExit) {
		s.opts.logger.Debug("command failed", "command", name, "error", err)
	}
	return err
}

// split turns p into absolute path components, resolving . and .. lexically.
func (s *Shell) split(p string) []string {
	var parts []string
	switch {
	case p == "~" || strings.HasPrefix(p, "~/"):
		p = strings.TrimPrefix(p, "~")
	case strings.HasPrefix(p, "/"):
	default:
		parts = append(parts, s.cwd...)
	}

	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, part)
		}
	}
	return parts
}

// lookup walks parts from the root, consulting the path cache first.
func (s *Shell) lookup(parts []string) (*Entry, error) {
	key := strings.Join(parts, "/")
	if e, ok := s.cache.Get(key); ok {
		return e, nil
	}

	e := s.root
	for _, part := range parts {
		if !e.IsDir() {
			return nil, fmt.Errorf("%s: %w", e.name, ErrNotDir)
		}
		child, err := e.children.Get(part)
		if errors.Is(err, bptree.ErrKeyNotFound) {
			return nil, fmt.Errorf("%s: %w", part, ErrNotFound)
		}
		e = child
	}

	s.cache.Add(key, e)
	return e, nil
}

// parentOf resolves the directory that holds the last component of p.
func (s *Shell) parentOf(p string) (*Entry, string, error) {
	parts := s.split(p)
	if len(parts) == 0 {
		return nil, "", fmt.Errorf("%q: %w", p, ErrInvalidName)
	}

	name := parts[len(parts)-1]
	parent, err := s.lookup(parts[:len(parts)-1])
	if err != nil {
		return nil, "", err
	}
	if !parent.IsDir() {
		return nil, "", fmt.Errorf("%s: %w", parent.name, ErrNotDir)
	}
	return parent, name, nil
}

func (s *Shell) create(args []string, mk func(name string) (*Entry, error)) error {
	if len(args) != 1 {
		return errUsage
	}

	parent, name, err := s.parentOf(args[0])
	if err != nil {
		return err
	}

	e, err := mk(name)
	if err != nil {
		return err
	}
	if err := parent.children.Insert(name, e); errors.Is(err, bptree.ErrKeyExists) {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}
	return nil
}

func (s *Shell) mkdir(args []string) error {
	return s.create(args, func(name string) (*Entry, error) {
		return newDir(name, s.opts.order, s.opts.logger)
	})
}

func (s *Shell) touch(args []string) error {
	return s.create(args, func(name string) (*Entry, error) {
		return newFile(name), nil
	})
}

func (s *Shell) ls(args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	parts := s.cwd
	if len(args) == 1 {
		parts = s.split(args[0])
	}
	dir, err := s.lookup(parts)
	if err != nil {
		return err
	}
	if !dir.IsDir() {
		fmt.Fprintln(s.opts.out, dir.name)
		return nil
	}

	for name, e := range dir.children.Scan() {
		if e.IsDir() {
			fmt.Fprintln(s.opts.out, s.dirColor.Sprint(name+"/"))
		} else {
			fmt.Fprintln(s.opts.out, name)
		}
	}
	return nil
}

func (s *Shell) cd(args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	target := "/"
	if len(args) == 1 {
		target = args[0]
	}

	parts := s.split(target)
	e, err := s.lookup(parts)
	if err != nil {
		return err
	}
	if !e.IsDir() {
		return fmt.Errorf("%s: %w", e.name, ErrNotDir)
	}
	s.cwd = parts
	return nil
}

func (s *Shell) rm(args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	parent, name, err := s.parentOf(args[0])
	if err != nil {
		return err
	}

	e, err := parent.children.Get(name)
	if errors.Is(err, bptree.ErrKeyNotFound) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if !e.IsEmpty() {
		return fmt.Errorf("%s: %w", name, ErrNotEmpty)
	}

	// The working directory may not be removed from under the shell
	parts := s.split(args[0])
	if len(parts) <= len(s.cwd) && strings.Join(s.cwd[:len(parts)], "/") == strings.Join(parts, "/") {
		return fmt.Errorf("%s: %w", name, ErrInvalidName)
	}

	if err := parent.children.Delete(name); err != nil {
		return err
	}
	s.cache.Purge()
	return nil
}

func (s *Shell) pwd(args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	fmt.Fprintln(s.opts.out, "/"+strings.Join(s.cwd, "/"))
	return nil
}

func (s *Shell) stat(args []string) error {
	if len(args) > 1 {
		return errUsage
	}

	parts := s.cwd
	if len(args) == 1 {
		parts = s.split(args[0])
	}
	e, err := s.lookup(parts)
	if err != nil {
		return err
	}
	if !e.IsDir() {
		fmt.Fprintf(s.opts.out, "%s: file\n", e.name)
		return nil
	}

	t := e.children
	fmt.Fprintf(s.opts.out, "/%s: entries=%d order=%d height=%d\n",
		strings.Join(parts, "/"), t.Len(), t.Order(), t.Height())
	return nil
}

// fsck verifies the tree of every directory reachable from the root.
func (s *Shell) fsck(args []string) error {
	if len(args) != 0 {
		return errUsage
	}

	dirs := 0
	var walk func(path string, dir *Entry) error
	walk = func(path string, dir *Entry) error {
		dirs++
		if err := dir.children.Verify(); err != nil {
			s.opts.logger.Error("directory tree corrupt", "path", path, "error", err)
			return fmt.Errorf("%s: %w", path, err)
		}
		for name, e := range dir.children.Scan() {
			if !e.IsDir() {
				continue
			}
			if err := walk(path+name+"/", e); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk("/", s.root); err != nil {
		return err
	}
	fmt.Fprintf(s.opts.out, "ok: %d directories\n", dirs)
	return nil
}

func (s *Shell) help(args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(s.opts.out, "  %-14s %s\n", commands[name].usage, commands[name].help)
	}
	return nil
}
