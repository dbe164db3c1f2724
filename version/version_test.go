package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name    string
		start   Info
		bi      debug.BuildInfo
		want    Info
		release bool
	}{
		{
			name:  "stamped values win",
			start: Info{Version: "1.2.0", Commit: "abcdef0"},
			bi: debug.BuildInfo{
				GoVersion: "go1.26.0",
				Main:      debug.Module{Version: "v0.9.0"},
				Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "1234567890"}},
			},
			want:    Info{Version: "1.2.0", Commit: "abcdef0", GoVersion: "go1.26.0"},
			release: true,
		},
		{
			name:  "module version and vcs settings fill dev builds",
			start: Info{Version: "dev"},
			bi: debug.BuildInfo{
				GoVersion: "go1.26.0",
				Main:      debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want:    Info{Version: "0.3.1", Commit: "0123456", GoVersion: "go1.26.0", Dirty: true},
			release: false,
		},
		{
			name:    "devel module stays dev",
			start:   Info{Version: "dev"},
			bi:      debug.BuildInfo{GoVersion: "go1.26.0", Main: debug.Module{Version: "(devel)"}},
			want:    Info{Version: "dev", GoVersion: "go1.26.0"},
			release: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start
			fromBuildInfo(&got, &tt.bi)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.IsRelease() != tt.release {
				t.Errorf("IsRelease = %v, want %v", got.IsRelease(), tt.release)
			}
		})
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", Commit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", Commit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "7.0.0"

	info := Get()
	if info.Version != "7.0.0" {
		t.Errorf("Version = %q", info.Version)
	}
}
