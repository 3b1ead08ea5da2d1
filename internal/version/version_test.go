package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildInfo(version string, settings ...debug.BuildSetting) func() (*debug.BuildInfo, bool) {
	return func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: version}, Settings: settings}, true
	}
}

func TestFromBuildInfo_LinkerValuesWin(t *testing.T) {
	info := fromBuildInfo(Info{Version: "v1.2.0", Commit: "abc1234", Date: "2026-01-02"},
		buildInfo("v0.9.0", debug.BuildSetting{Key: "vcs.revision", Value: "ffffffffffffffff"}))

	assert.Equal(t, Info{Version: "v1.2.0", Commit: "abc1234", Date: "2026-01-02"}, info)
}

func TestFromBuildInfo_FillsGaps(t *testing.T) {
	info := fromBuildInfo(Info{Version: "dev"}, buildInfo("v0.3.1",
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		debug.BuildSetting{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
	))

	assert.Equal(t, Info{Version: "v0.3.1", Commit: "0123456789ab", Date: "2026-03-04T05:06:07Z"}, info)
}

func TestFromBuildInfo_DevelBuildStaysDev(t *testing.T) {
	info := fromBuildInfo(Info{Version: "dev"}, buildInfo("(devel)"))
	assert.Equal(t, Info{Version: "dev"}, info)
}

func TestFromBuildInfo_NoBuildInfo(t *testing.T) {
	info := fromBuildInfo(Info{Version: "dev"}, func() (*debug.BuildInfo, bool) { return nil, false })
	assert.Equal(t, Info{Version: "dev"}, info)
}
