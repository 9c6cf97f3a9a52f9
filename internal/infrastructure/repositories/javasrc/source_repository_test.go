//go:build unit

package javasrc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/bazelize/internal/infrastructure/repositories/javasrc"
)

var defaultRoots = []string{"src/main/java", "src/test/java"}

func writeSource(t *testing.T, rootDir, relPath, content string) {
	t.Helper()
	path := filepath.Join(rootDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSourceRepositoryScan(t *testing.T) {
	t.Parallel()

	t.Run("should index packages, classes and imports", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/main/java/com/acme/util/Strings.java", `
package com.acme.util;

import java.util.List;
import com.google.common.base.Joiner;

public class Strings {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)

		file := index.Files[0]
		assert.Equal(t, "com.acme.util", file.Package)
		assert.Equal(t, "Strings", file.Class)
		assert.Equal(t, []string{"java.util.List", "com.google.common.base.Joiner"}, file.Imports)
		assert.False(t, file.IsTest)

		ps, ok := index.ResolveClass("com.acme.util.Strings")
		require.True(t, ok)
		assert.Equal(t, "src/main/java/com/acme/util", ps.Dir)
	})

	t.Run("should mark files with JUnit imports as tests", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/main/java/com/acme/util/OddlyPlacedTest.java", `
package com.acme.util;

import org.junit.Test;

public class OddlyPlacedTest {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)
		assert.True(t, index.Files[0].IsTest)
	})

	t.Run("should mark every file under a test root as a test", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/test/java/com/acme/util/Helper.java", `
package com.acme.util;

public class Helper {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)
		assert.True(t, index.Files[0].IsTest)
	})

	t.Run("should detect parameterized runners", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/test/java/com/acme/OrdersTest.java", `
package com.acme;

import org.junit.Test;
import org.junit.runner.RunWith;
import org.junit.runners.Parameterized;

@RunWith(Parameterized.class)
public class OrdersTest {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)
		assert.True(t, index.Files[0].UsesParameterizedRunner)
	})

	t.Run("should resolve the owning type of a static import", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/test/java/com/acme/OrdersTest.java", `
package com.acme;

import static org.junit.Assert.assertEquals;

public class OrdersTest {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)
		assert.Equal(t, []string{"org.junit.Assert"}, index.Files[0].Imports)
	})

	t.Run("should scan content roots inside module directories", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "core/src/main/java/com/acme/core/Engine.java", `
package com.acme.core;

public class Engine {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		require.Len(t, index.Files, 1)
		assert.Equal(t, "core/src/main/java/com/acme/core", index.Packages["com.acme.core"].Dir)
	})

	t.Run("should honor exclude patterns", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/main/java/com/acme/generated/Stub.java", `
package com.acme.generated;

public class Stub {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots,
			[]string{"src/main/java/com/acme/generated/*"})

		// then
		require.NoError(t, err)
		assert.Empty(t, index.Files)
	})

	t.Run("should record test resource roots", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "src/test/java/com/acme/OrdersTest.java", `
package com.acme;

import org.junit.Test;

public class OrdersTest {}
`)
		require.NoError(t, os.MkdirAll(
			filepath.Join(dir, "src", "test", "resources", "fixtures"), 0o755))

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, index.ResourceRoots, "src/test/resources")
	})

	t.Run("should skip build output directories", func(t *testing.T) {
		// given
		dir := t.TempDir()
		writeSource(t, dir, "target/generated-sources/src/main/java/com/acme/Gen.java", `
package com.acme;

public class Gen {}
`)

		// when
		index, err := javasrc.NewSourceRepository().Scan(
			context.Background(), dir, defaultRoots, nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, index.Files)
	})
}
