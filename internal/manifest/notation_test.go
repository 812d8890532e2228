package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExternalNotation(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  ExternalPackageReference
	}{
		{
			name:     "with snapshot version",
			raw:      "org.openrewrite:plugin:5.20.0-SNAPSHOT",
			expected: ExternalPackageReference{Coordinate: "org.openrewrite:plugin", Version: "5.20.0-SNAPSHOT"},
		},
		{
			name:     "platform managed version",
			raw:      "com.autonomousapps:dependency-analysis-gradle-plugin",
			expected: ExternalPackageReference{Coordinate: "com.autonomousapps:dependency-analysis-gradle-plugin"},
		},
		{name: "error - single segment", raw: "plugin", expectErr: true},
		{name: "error - too many segments", raw: "a:b:c:d", expectErr: true},
		{name: "error - empty group", raw: ":b:1.0", expectErr: true},
		{name: "error - empty string", raw: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := ParseExternalNotation(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ref)
		})
	}
}

func TestModuleName(t *testing.T) {
	assert.Equal(t, "idea", ModuleName(":idea"))
	assert.Equal(t, "idea", ModuleName("idea"))
	assert.Equal(t, "a:b", ModuleName(":a:b"))
}

func TestDependencyDeclaration_String(t *testing.T) {
	assert.Equal(t, "project(:idea)", Module("idea").String())
	assert.Equal(t, "g:a:1.0", External("g:a", "1.0").String())
}
