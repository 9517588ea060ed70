package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltinTargets(t *testing.T) {
	registry := NewRegistry()

	assert.Equal(t, []string{
		"cheribsd-aarch64",
		"cheribsd-mips64-purecap",
		"cheribsd-morello-purecap",
		"cheribsd-riscv64-hybrid",
		"cheribsd-riscv64-purecap",
	}, registry.Names())

	descriptor, err := registry.Get("cheribsd-riscv64-purecap")
	require.NoError(t, err)
	assert.Equal(t, "riscv64", descriptor.Processor)
	assert.Equal(t, "riscv64-unknown-freebsd13", descriptor.Triple)
	assert.Contains(t, descriptor.CommonFlags, "xcheri")
}

func TestRegistryGetUnknownTarget(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get("cheribsd-sparc64")
	assert.EqualError(t, err, `target "cheribsd-sparc64" is not found`)
}

func TestRegistryLoadDir(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.LoadDir("testdata/targets"))

	// A target named inside the file.
	descriptor, err := registry.Get("cheribsd-riscv64-nocheri")
	require.NoError(t, err)
	assert.Equal(t, "riscv64", descriptor.Processor)
	assert.Equal(t, "/srv/nfs/riscv64", descriptor.RootfsDir)

	// A target named after its file.
	descriptor, err = registry.Get("morello-benchmark")
	require.NoError(t, err)
	assert.Equal(t, "aarch64", descriptor.Processor)
	assert.True(t, descriptor.ForceStatic)
}

func TestRegistryLoadDirOverridesBuiltin(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.LoadDir("testdata/override"))

	descriptor, err := registry.Get("cheribsd-riscv64-purecap")
	require.NoError(t, err)
	assert.Equal(t, "/srv/custom-rootfs", descriptor.RootfsDir)
}

func TestRegistryLoadDirMissingDirIsNoError(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.LoadDir("testdata/does-not-exist"))
	assert.Len(t, registry.Names(), 5)
}

func TestRegistryLoadDirBadFile(t *testing.T) {
	registry := NewRegistry()
	err := registry.LoadDir("testdata/broken")
	assert.ErrorContains(t, err, "failed to load target file")
}

func TestRegistryAllSortedByName(t *testing.T) {
	registry := NewRegistry()

	all := registry.All()
	require.Len(t, all, 5)
	assert.Equal(t, "cheribsd-aarch64", all[0].Name)
	assert.Equal(t, "cheribsd-riscv64-purecap", all[4].Name)
}
