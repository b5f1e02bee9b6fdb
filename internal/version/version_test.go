package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stamp sets the ldflags variables the release build sets and restores them
// when t finishes.
func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestDevBuild(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, "dev", info.Short())
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, "adminctl/dev", UserAgent())
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestReleaseBuild(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		date      string
		want      string
		userAgent string
	}{
		{
			name:      "tagged release",
			version:   "v1.4.0",
			commit:    "9f2c1e7ab04d55c3e1f0",
			date:      "2026-09-30T08:00:00Z",
			want:      "adminctl v1.4.0 (9f2c1e7a) built 2026-09-30T08:00:00Z with " + runtime.Version() + " for " + runtime.GOOS + "/" + runtime.GOARCH,
			userAgent: "adminctl/v1.4.0",
		},
		{
			name:      "short commit kept whole",
			version:   "v1.4.1-rc.1",
			commit:    "9f2c1e7",
			date:      "2026-10-02",
			want:      "adminctl v1.4.1-rc.1 (9f2c1e7) built 2026-10-02 with " + runtime.Version() + " for " + runtime.GOOS + "/" + runtime.GOARCH,
			userAgent: "adminctl/v1.4.1-rc.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.version, tt.commit, tt.date)

			info := GetInfo()
			assert.Equal(t, tt.want, info.String())
			assert.Equal(t, tt.version, info.Short())
			assert.Equal(t, tt.commit, info.Commit)
			assert.Equal(t, tt.userAgent, UserAgent())
		})
	}
}
