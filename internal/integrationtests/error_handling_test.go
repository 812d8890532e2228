package integration_tests

import (
	"errors"
	"testing"

	"github.com/specialistvlad/manifold/internal/app"
	"github.com/specialistvlad/manifold/internal/manifest"
	"github.com/specialistvlad/manifold/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_FailingUnitsDoNotHideOthers(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
unit "no-plugins" {
  dependency "module" "ok" {}
}

unit "ok" {
  plugins = ["java-library"]
}

unit "loops" {
  plugins = ["java-library"]

  dependency "module" ":loops" {}
}

unit "unversioned" {
  plugins = ["java-library"]

  dependency "external" "com.example:lib" {}
}
`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, nil)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "3 of 4 units failed to resolve")
	assert.ErrorIs(t, result.Err, manifest.ErrEmptyPluginList)
	assert.ErrorIs(t, result.Err, manifest.ErrSelfReference)
	assert.ErrorIs(t, result.Err, manifest.ErrInvalidCoordinate)

	var declErr *manifest.DeclarationError
	require.True(t, errors.As(result.Err, &declErr))

	units := result.Units(t)
	require.Len(t, units, 1)
	assert.Equal(t, "ok", units[0].Unit)

	testutil.AssertLogged(t, result, "Unit failed to resolve.", "unit=loops")
}

func TestErrorHandling_DuplicateUnitAcrossFormats(t *testing.T) {
	files := map[string]string{
		"a.hcl":  "unit \"idea\" {\n  plugins = [\"p\"]\n}\n",
		"b.yaml": "units:\n  - name: idea\n    plugins: [p]\n",
	}

	result := testutil.RunIntegrationTest(t, files, nil)

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "declared more than once")
}

func TestErrorHandling_UnknownSelectedUnit(t *testing.T) {
	files := map[string]string{"a.hcl": "unit \"idea\" {\n  plugins = [\"p\"]\n}\n"}

	result := testutil.RunIntegrationTest(t, files, func(c *app.Config) { c.Unit = ":cleanup" })

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), `unit "cleanup" is not declared`)
	assert.Empty(t, result.Output)
}
