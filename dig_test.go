package gameshare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/junioryono/gameshare/internal/testutil"
)

func TestDigPackage_Provide(t *testing.T) {
	t.Parallel()

	t.Run("dependent constructors", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("vehicles")
		require.NoError(t, pkg.Container().Provide(func() int { return 250 }))
		require.NoError(t, pkg.Provide(testutil.NewEngine))
		require.NoError(t, pkg.Provide(testutil.NewGarage))

		g := NewGameShare()
		require.NoError(t, CollectShared(g, pkg))
		assert.Equal(t, 2, g.Count(), "container-only values must not be shared")

		engine := MustResolve[*testutil.Engine](g)
		garage := MustResolve[*testutil.Garage](g)
		assert.Equal(t, 250, engine.Power)
		assert.Same(t, engine, garage.Engine)
	})

	t.Run("error result is not shared", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("fallible")
		require.NoError(t, pkg.Provide(func() (*testutil.Engine, error) {
			return testutil.NewEngine(1), nil
		}))

		g := NewGameShare()
		require.NoError(t, pkg.ShareWith(g))
		assert.Equal(t, 1, g.Count())
		assert.True(t, IsShared[*testutil.Engine](g))
	})

	t.Run("constructor error", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("broken")
		require.NoError(t, pkg.Provide(func() (*testutil.Engine, error) {
			return nil, testutil.ErrIntentional
		}))

		err := pkg.ShareWith(NewGameShare())
		require.Error(t, err)

		var pkgErr PackageError
		require.True(t, errors.As(err, &pkgErr))
		assert.Equal(t, "broken", pkgErr.Package)
		assert.Equal(t, testutil.ErrIntentional, dig.RootCause(pkgErr.Cause))
	})

	t.Run("missing dependency", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("incomplete")
		require.NoError(t, pkg.Provide(testutil.NewGarage))

		err := pkg.ShareWith(NewGameShare())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incomplete")
	})

	t.Run("interface output", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("logging")
		require.NoError(t, pkg.Provide(func() testutil.Logger { return testutil.NewMemoryLogger() }))

		g := NewGameShare()
		require.NoError(t, pkg.ShareWith(g))
		assert.True(t, IsShared[testutil.Logger](g))
	})
}

func TestDigPackage_ProvideOptions(t *testing.T) {
	t.Parallel()

	newEngine := func() *testutil.Engine { return testutil.NewEngine(7) }
	newLogger := func() *testutil.MemoryLogger { return testutil.NewMemoryLogger() }

	rejected := []struct {
		name        string
		constructor any
		opt         dig.ProvideOption
	}{
		{"name", newEngine, dig.Name("main")},
		{"group", newEngine, dig.Group("engines")},
		{"as", newLogger, dig.As(new(testutil.Logger))},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pkg := NewDigPackage("options")
			err := pkg.Provide(tt.constructor, tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)

			var pkgErr PackageError
			require.True(t, errors.As(err, &pkgErr))
			assert.Equal(t, "options", pkgErr.Package)

			g := NewGameShare()
			require.NoError(t, pkg.ShareWith(g))
			assert.Zero(t, g.Count(), "a rejected constructor must not be shared")
		})
	}

	t.Run("info option is allowed", func(t *testing.T) {
		t.Parallel()

		var info dig.ProvideInfo
		pkg := NewDigPackage("options")
		require.NoError(t, pkg.Provide(newEngine, dig.FillProvideInfo(&info)))
		require.Len(t, info.Outputs, 1)

		g := NewGameShare()
		require.NoError(t, pkg.ShareWith(g))
		assert.Equal(t, 7, MustResolve[*testutil.Engine](g).Power)
	})

	t.Run("named value through ProvideKeyed", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("options")
		require.NoError(t, pkg.ProvideKeyed(newEngine, "main"))

		g := NewGameShare()
		require.NoError(t, pkg.ShareWith(g))
		engine, err := ResolveKeyed[*testutil.Engine](g, "main")
		require.NoError(t, err)
		assert.Equal(t, 7, engine.Power)
	})
}

func TestDigPackage_ProvideKeyed(t *testing.T) {
	t.Parallel()

	pkg := NewDigPackage("weapons")
	require.NoError(t, pkg.ProvideKeyed(func() testutil.Weapon { return testutil.NewSword(9) }, "Primary"))
	require.NoError(t, pkg.ProvideKeyed(func() testutil.Weapon { return testutil.NewBow(4) }, "Secondary"))

	g := NewGameShare()
	require.NoError(t, CollectShared(g, pkg))

	var a TArmory
	require.NoError(t, g.InjectSharedObjects(&a))
	assert.Equal(t, "sword", a.Primary.Name())
	assert.Equal(t, 9, a.Primary.Damage())
	assert.Equal(t, "bow", a.Secondary.Name())
}

func TestDigPackage_InvalidConstructors(t *testing.T) {
	t.Parallel()

	type results struct {
		dig.Out
		Engine *testutil.Engine
	}

	tests := []struct {
		name        string
		constructor any
	}{
		{"nil", nil},
		{"not a function", testutil.NewEngine(1)},
		{"only error", func() error { return nil }},
		{"no results", func() {}},
		{"result object", func() results { return results{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pkg := NewDigPackage("invalid")
			err := pkg.Provide(tt.constructor)
			require.Error(t, err)

			var pkgErr PackageError
			assert.True(t, errors.As(err, &pkgErr))
		})
	}

	t.Run("keyed with empty sub key", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("invalid")
		err := pkg.ProvideKeyed(func() testutil.Weapon { return testutil.NewSword(1) }, "")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("keyed with several results", func(t *testing.T) {
		t.Parallel()

		pkg := NewDigPackage("invalid")
		err := pkg.ProvideKeyed(func() (*testutil.Sword, *testutil.Bow) {
			return testutil.NewSword(1), testutil.NewBow(1)
		}, "Pair")
		assert.Error(t, err)
	})
}
