package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_IsDevOrSemver(t *testing.T) {
	// Given: a test binary, built without ldflags

	// Then: Version is "dev" or a module version
	if Version == "dev" {
		return
	}
	semver := regexp.MustCompile(`^v?\d+\.\d+\.\d+(-[a-zA-Z0-9.+-]+)?$`)
	assert.True(t, semver.MatchString(Version), "unexpected version %q", Version)
}

func TestString_ContainsBuildFields(t *testing.T) {
	s := String()

	assert.True(t, strings.HasPrefix(s, "seroost "+Version))
	assert.Contains(t, s, "commit: "+Commit)
	assert.Contains(t, s, "go: "+runtime.Version())
}

func TestShort(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestGetInfo_JSON(t *testing.T) {
	// When: build info is encoded
	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	// Then: the documented keys are present
	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, runtime.GOOS, m["os"])
	assert.Equal(t, runtime.GOARCH, m["arch"])
}
