package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	s, err := New(WithOutput(&out), WithColor(false))
	require.NoError(t, err)
	return s, &out
}

func run(t *testing.T, s *Shell, out *bytes.Buffer, line string) string {
	t.Helper()

	out.Reset()
	require.NoError(t, s.Exec(line), line)
	return out.String()
}

// uniqueNames returns n distinct generated names in generation order.
func uniqueNames(n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := faker.Word() + faker.Word()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func TestShellPrompt(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	assert.Equal(t, "bptree:~$ ", s.Prompt())

	run(t, s, out, "mkdir a")
	run(t, s, out, "mkdir a/b")
	run(t, s, out, "cd a/b")
	assert.Equal(t, "bptree:~/a/b$ ", s.Prompt())
	assert.Equal(t, "/a/b\n", run(t, s, out, "pwd"))

	run(t, s, out, "cd ..")
	assert.Equal(t, "bptree:~/a$ ", s.Prompt())

	run(t, s, out, "cd /")
	assert.Equal(t, "bptree:~$ ", s.Prompt())

	run(t, s, out, "cd a/b")
	run(t, s, out, "cd")
	assert.Equal(t, "bptree:~$ ", s.Prompt())

	run(t, s, out, "cd ..")
	assert.Equal(t, "bptree:~$ ", s.Prompt())
}

func TestShellListSorted(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	names := uniqueNames(50)
	for i, name := range names {
		if i%2 == 0 {
			run(t, s, out, "mkdir "+name)
		} else {
			run(t, s, out, "touch "+name)
		}
	}

	listing := strings.Fields(run(t, s, out, "ls"))
	require.Len(t, listing, len(names))
	for i := 1; i < len(listing); i++ {
		prev := strings.TrimSuffix(listing[i-1], "/")
		cur := strings.TrimSuffix(listing[i], "/")
		assert.Less(t, prev, cur)
	}

	// Directories are marked
	for i, name := range names {
		if i%2 == 0 {
			assert.Contains(t, listing, name+"/")
		} else {
			assert.Contains(t, listing, name)
		}
	}

	assert.Equal(t, "ok: 26 directories\n", run(t, s, out, "fsck"))
}

func TestShellErrors(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	run(t, s, out, "mkdir docs")
	run(t, s, out, "touch docs/readme")

	tests := []struct {
		line string
		err  error
	}{
		{"mkdir docs", ErrExists},
		{"touch docs/readme", ErrExists},
		{"cd missing", ErrNotFound},
		{"cd docs/readme", ErrNotDir},
		{"mkdir docs/readme/x", ErrNotDir},
		{"rm docs", ErrNotEmpty},
		{"rm missing", ErrNotFound},
		{"frobnicate", ErrUnknown},
		{"mkdir /", ErrInvalidName},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, s.Exec(tt.line), tt.err, tt.line)
	}

	var usage *usageError
	assert.ErrorAs(t, s.Exec("mkdir"), &usage)
	assert.ErrorAs(t, s.Exec("rm a b"), &usage)
}

func TestShellRemove(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	run(t, s, out, "mkdir a")
	run(t, s, out, "mkdir a/b")
	run(t, s, out, "touch a/b/f")

	// Warm the path cache before removing
	run(t, s, out, "ls a/b")

	run(t, s, out, "rm a/b/f")
	run(t, s, out, "rm a/b")
	assert.ErrorIs(t, s.Exec("ls a/b"), ErrNotFound)
	assert.Empty(t, run(t, s, out, "ls a"))

	// Recreated directories are fresh
	run(t, s, out, "mkdir a/b")
	assert.Empty(t, run(t, s, out, "ls a/b"))

	// The working directory and its ancestors cannot be removed
	run(t, s, out, "cd a/b")
	assert.ErrorIs(t, s.Exec("rm ."), ErrInvalidName)
	assert.ErrorIs(t, s.Exec("rm /a/b"), ErrInvalidName)
}

func TestShellManyEntries(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	names := uniqueNames(200)
	for _, name := range names {
		run(t, s, out, "touch "+name)
	}
	assert.Contains(t, run(t, s, out, "stat"), "entries=200 order=4")

	for _, name := range names[:150] {
		run(t, s, out, "rm "+name)
	}
	assert.Len(t, strings.Fields(run(t, s, out, "ls")), 50)
	assert.Equal(t, "ok: 1 directories\n", run(t, s, out, "fsck"))
}

func TestShellRun(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	script := strings.Join([]string{
		"mkdir src",
		"",
		"cd src",
		"touch main",
		"mkdir main",
		"pwd",
		"exit",
		"pwd",
	}, "\n")

	require.NoError(t, s.Run(strings.NewReader(script), false))
	assert.Equal(t, "main: already exists\n/src\n", out.String())
}

func TestShellRunInteractive(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	require.NoError(t, s.Run(strings.NewReader("mkdir x\ncd x\n"), true))
	assert.Equal(t, "bptree:~$ bptree:~$ bptree:~/x$ \n", out.String())
}

func TestShellHelp(t *testing.T) {
	t.Parallel()
	s, out := setup(t)

	help := run(t, s, out, "help")
	for name := range commands {
		assert.Contains(t, help, name)
	}
}
