package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kotlinDSL = "kotlin-dsl-gradle-plugin"

func rootBuild(extra ...DependencyDeclaration) BuildUnit {
	deps := []DependencyDeclaration{
		Module("idea"),
		Module("profiling"),
		Module("cleanup").Because("shared cache service"),
		External("com.autonomousapps:dependency-analysis-gradle-plugin", "latest"),
		External("org.openrewrite:plugin", "5.20.0-SNAPSHOT"),
	}
	return BuildUnit{
		Name:           "root-build",
		Description:    "Provides plugins that configures the root Gradle project",
		AppliedPlugins: []string{kotlinDSL},
		Dependencies:   append(deps, extra...),
	}
}

func TestResolve_RootBuildScenario(t *testing.T) {
	set, err := Resolve(rootBuild())
	require.NoError(t, err)

	want := []DependencyDeclaration{
		Module("idea"),
		Module("profiling"),
		Module("cleanup").Because("shared cache service"),
		External("com.autonomousapps:dependency-analysis-gradle-plugin", "latest"),
		External("org.openrewrite:plugin", "5.20.0-SNAPSHOT"),
	}
	if diff := cmp.Diff(want, set.Dependencies); diff != "" {
		t.Fatalf("dependencies mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{kotlinDSL}, set.Plugins)
	assert.Equal(t, "root-build", set.Unit)
}

func TestResolve_DuplicateKeepsFirstPosition(t *testing.T) {
	set, collapsed, err := Explain(rootBuild(Module("idea")))
	require.NoError(t, err)

	require.Len(t, set.Dependencies, 5)
	assert.Equal(t, Module("idea"), set.Dependencies[0])
	require.Len(t, collapsed, 1)
	assert.Equal(t, Collapse{Key: "module:idea", FirstIndex: 0, DuplicateIndex: 5}, collapsed[0])
}

func TestResolve_ReasonMerging(t *testing.T) {
	testCases := []struct {
		name       string
		deps       []DependencyDeclaration
		wantReason string
		adopted    bool
	}{
		{
			name:       "first reason wins",
			deps:       []DependencyDeclaration{Module("a").Because("first"), Module("a").Because("second")},
			wantReason: "first",
		},
		{
			name:       "later reason fills a gap",
			deps:       []DependencyDeclaration{Module("a"), Module("a").Because("second")},
			wantReason: "second",
			adopted:    true,
		},
		{
			name:       "no reason anywhere",
			deps:       []DependencyDeclaration{Module("a"), Module("a")},
			wantReason: "",
		},
		{
			name: "external duplicates collapse on coordinate",
			deps: []DependencyDeclaration{
				External("g:a", "1.0"),
				External("g:a", "2.0").Because("pinned"),
			},
			wantReason: "pinned",
			adopted:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			unit := BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: tc.deps}
			set, collapsed, err := Explain(unit)
			require.NoError(t, err)
			require.Len(t, set.Dependencies, 1)
			assert.Equal(t, tc.wantReason, set.Dependencies[0].Reason)
			require.Len(t, collapsed, 1)
			assert.Equal(t, tc.adopted, collapsed[0].ReasonAdopted)
		})
	}
}

func TestResolve_FirstVersionIsKept(t *testing.T) {
	unit := BuildUnit{
		Name:           "u",
		AppliedPlugins: []string{kotlinDSL},
		Dependencies:   []DependencyDeclaration{External("g:a", "1.0"), External("g:a", "2.0")},
	}
	set, err := Resolve(unit)
	require.NoError(t, err)
	require.Len(t, set.Dependencies, 1)
	assert.Equal(t, "1.0", set.Dependencies[0].External.Version)
}

func TestResolve_ModuleAndExternalWithSameIDStayDistinct(t *testing.T) {
	unit := BuildUnit{
		Name:           "u",
		AppliedPlugins: []string{kotlinDSL},
		Dependencies:   []DependencyDeclaration{Module("g:a"), External("g:a", "1.0")},
	}
	set, err := Resolve(unit)
	require.NoError(t, err)
	assert.Len(t, set.Dependencies, 2)
}

func TestResolve_SurroundingWhitespaceDoesNotSplitIdentity(t *testing.T) {
	unit := BuildUnit{
		Name:           "app",
		AppliedPlugins: []string{"p"},
		Dependencies: []DependencyDeclaration{
			Module(" idea"),
			External("g:a ", "1.0"),
			Module("idea").Because("padded twin"),
			External("g:a", "2.0"),
		},
	}

	set, collapsed, err := Explain(unit)
	require.NoError(t, err)
	require.Len(t, set.Dependencies, 2)
	assert.Equal(t, "padded twin", set.Dependencies[0].Reason)
	assert.Equal(t, "1.0", set.Dependencies[1].External.Version)
	require.Len(t, collapsed, 2)
	assert.Equal(t, "module:idea", collapsed[0].Key)
	assert.Equal(t, "external:g:a", collapsed[1].Key)
}

func TestResolve_NoDuplicatesPreservesLengthAndOrder(t *testing.T) {
	unit := BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}}
	for _, name := range []string{"z", "b", "y", "a", "x"} {
		unit.Dependencies = append(unit.Dependencies, Module(name))
	}

	set, err := Resolve(unit)
	require.NoError(t, err)
	assert.Equal(t, unit.Dependencies, set.Dependencies)
}

func TestResolve_Idempotent(t *testing.T) {
	first, err := Resolve(rootBuild(Module("idea"), External("org.openrewrite:plugin", "6.0.0")))
	require.NoError(t, err)

	second, err := Resolve(first.AsBuildUnit())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second resolution differs (-first +second):\n%s", diff)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	unit := BuildUnit{
		Name:           "u",
		AppliedPlugins: []string{kotlinDSL},
		Dependencies:   []DependencyDeclaration{Module("a"), Module("a").Because("late")},
	}
	before := append([]DependencyDeclaration(nil), unit.Dependencies...)

	_, err := Resolve(unit)
	require.NoError(t, err)
	assert.Equal(t, before, unit.Dependencies)
}

func TestResolve_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		unit      BuildUnit
		wantKind  error
		wantIndex int
	}{
		{
			name:      "empty plugin list with valid deps",
			unit:      BuildUnit{Name: "u", Dependencies: []DependencyDeclaration{Module("a")}},
			wantKind:  ErrEmptyPluginList,
			wantIndex: -1,
		},
		{
			name:      "empty plugin list wins over bad deps",
			unit:      BuildUnit{Name: "u", AppliedPlugins: []string{}, Dependencies: []DependencyDeclaration{External("", "")}},
			wantKind:  ErrEmptyPluginList,
			wantIndex: -1,
		},
		{
			name:      "empty version",
			unit:      BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{External("g:a", "")}},
			wantKind:  ErrInvalidCoordinate,
			wantIndex: 0,
		},
		{
			name:      "empty coordinate",
			unit:      BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{Module("a"), External(" ", "1.0")}},
			wantKind:  ErrInvalidCoordinate,
			wantIndex: 1,
		},
		{
			name:      "empty module name",
			unit:      BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{Module("")}},
			wantKind:  ErrInvalidCoordinate,
			wantIndex: 0,
		},
		{
			name:      "untagged declaration",
			unit:      BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{{Reason: "orphan"}}},
			wantKind:  ErrInvalidCoordinate,
			wantIndex: 0,
		},
		{
			name:      "self reference",
			unit:      BuildUnit{Name: "root-build", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{Module("idea"), Module("root-build")}},
			wantKind:  ErrSelfReference,
			wantIndex: 1,
		},
		{
			name: "first error in declaration order",
			unit: BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{
				Module("u"),
				External("g:a", ""),
			}},
			wantKind:  ErrSelfReference,
			wantIndex: 0,
		},
		{
			name: "invalid duplicate is still reported",
			unit: BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{
				External("g:a", "1.0"),
				External("g:a", ""),
			}},
			wantKind:  ErrInvalidCoordinate,
			wantIndex: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := Resolve(tc.unit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantKind), "got %v", err)
			assert.Empty(t, set.Dependencies)

			var declErr *DeclarationError
			require.True(t, errors.As(err, &declErr))
			assert.Equal(t, tc.wantIndex, declErr.Index)
			assert.Equal(t, tc.unit.Name, declErr.Unit)
		})
	}
}

func TestDeclarationError_Message(t *testing.T) {
	_, err := Resolve(BuildUnit{Name: "u", AppliedPlugins: []string{kotlinDSL}, Dependencies: []DependencyDeclaration{External("g:a", "")}})
	require.Error(t, err)
	assert.Equal(t, `unit "u": invalid coordinate at dependency #0 (external:g:a): package version is empty`, err.Error())
	assert.Equal(t, "invalid_coordinate", KindName(err))
	assert.Equal(t, "other", KindName(errors.New("boom")))
}

func TestDefaultResolver_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefault().Resolve(ctx, rootBuild())
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultResolver_ReturnsCollapses(t *testing.T) {
	res, err := NewDefault().Resolve(context.Background(), rootBuild(Module("profiling").Because("late")))
	require.NoError(t, err)
	assert.Len(t, res.Set.Dependencies, 5)
	require.Len(t, res.Collapsed, 1)
	assert.Equal(t, "module:profiling", res.Collapsed[0].Key)
	assert.Equal(t, "late", res.Set.Dependencies[1].Reason)
}
