package routepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in      string
		path    string
		query   string
		changed bool
	}{
		{"", "/", "", true},
		{"/", "/", "", false},
		{"/about", "/about", "", false},
		{"/about/", "/about", "", true},
		{"about", "/about", "", true},
		{"/dashboard//profile///alice", "/dashboard/profile/alice", "", true},
		{"/dashboard/./settings", "/dashboard/settings", "", true},
		{"/dashboard/profile/../settings", "/dashboard/settings", "", true},
		{"/contact?x=1&y=2", "/contact", "x=1&y=2", false},
		{"/contact#top", "/contact", "", false},
		{"/a%20b", "/a%20b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, tt.query, got.Query)
			assert.Equal(t, tt.changed, got.Changed)
		})
	}
}

func TestCanonicalizeErrors(t *testing.T) {
	tests := []struct {
		in  string
		err error
	}{
		{`/a\b`, ErrBackslashInPath},
		{"/a\x00", ErrNullByteInPath},
		{"/a%00", ErrNullByteInPath},
		{"/a%GG", ErrInvalidPercentEscape},
		{"/a%2", ErrInvalidPercentEscape},
		{"/..", ErrPathEscapesRoot},
		{"/a/../../b", ErrPathEscapesRoot},
	}
	for _, tt := range tests {
		_, err := Canonicalize(tt.in)
		assert.ErrorIs(t, err, tt.err, tt.in)
	}
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "/a?b=1", Result{Path: "/a", Query: "b=1"}.String())
	assert.Equal(t, "/a", Result{Path: "/a"}.String())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, target, want string
	}{
		{"/dashboard", "profile", "/dashboard/profile"},
		{"/dashboard/", "settings", "/dashboard/settings"},
		{"/dashboard", "profile/alice", "/dashboard/profile/alice"},
		{"/dashboard/settings", "..", "/dashboard"},
		{"/dashboard", "/about", "/about"},
		{"/", "contact", "/contact"},
		{"/about", "", "/about"},
		{"/dashboard?tab=1", "settings?x=2", "/dashboard/settings?x=2"},
	}
	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.target)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.want, got.String(), "%s + %s", tt.base, tt.target)
	}
}

func TestResolveRejectsExternal(t *testing.T) {
	for _, target := range []string{"http://evil.example", "https://x", "//evil.example/a"} {
		_, err := Resolve("/", target)
		assert.ErrorIs(t, err, ErrInvalidPath, target)
	}
	_, err := Resolve("/", "../..")
	assert.ErrorIs(t, err, ErrPathEscapesRoot)
}

func TestJoinAndSplit(t *testing.T) {
	assert.Equal(t, "/dashboard/profile", Join("dashboard", "profile"))
	assert.Equal(t, "/", Join())
	assert.Equal(t, "/", Join("..", ".."))

	assert.Nil(t, Split("/"))
	assert.Equal(t, []string{"dashboard", "profile", "alice"}, Split("/dashboard/profile/alice"))
}

func TestDecodeSegment(t *testing.T) {
	got, err := DecodeSegment("a%20b", false)
	require.NoError(t, err)
	assert.Equal(t, "a b", got)

	_, err = DecodeSegment("a%2Fb", false)
	assert.ErrorIs(t, err, ErrEncodedSlashInSegment)

	got, err = DecodeSegment("a%2Fb", true)
	require.NoError(t, err)
	assert.Equal(t, "a/b", got)

	_, err = DecodeSegment("%zz", false)
	assert.ErrorIs(t, err, ErrInvalidPercentEscape)
}

func TestSplitQuery(t *testing.T) {
	path, query := SplitQuery("/a?b=1")
	assert.Equal(t, "/a", path)
	assert.Equal(t, "b=1", query)

	path, query = SplitQuery("/a")
	assert.Equal(t, "/a", path)
	assert.Empty(t, query)
}
