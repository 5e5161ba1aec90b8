package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveInclusion(t *testing.T) {
	tests := []struct {
		name      string
		flags     flags
		wantFiles bool
		wantDirs  bool
	}{
		{name: "defaults", flags: flags{files: true, dirs: true}, wantFiles: true, wantDirs: true},
		{name: "files toggle off", flags: flags{files: false, dirs: true}, wantFiles: false, wantDirs: true},
		{name: "dirs toggle off", flags: flags{files: true, dirs: false}, wantFiles: true, wantDirs: false},
		{
			name:      "files-only overrides toggles",
			flags:     flags{files: false, dirs: true, filesOnly: true},
			wantFiles: true,
			wantDirs:  false,
		},
		{
			name:      "dirs-only overrides toggles",
			flags:     flags{files: true, dirs: false, dirsOnly: true},
			wantFiles: false,
			wantDirs:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, dirs := resolveInclusion(tt.flags)
			assert.Equal(t, tt.wantFiles, files)
			assert.Equal(t, tt.wantDirs, dirs)
		})
	}
}
