package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cheritools/cherigen/cli/config"
	generate_ctx "github.com/cheritools/cherigen/cli/generate/context"
	"github.com/cheritools/cherigen/cli/templates/builtin"
)

// testCliOpts returns options pointing at the testdata target files.
func testCliOpts() *config.CliOpts {
	return &config.CliOpts{
		SDK:     &config.SDKOpts{Dir: "/opt/cheri/sdk"},
		Output:  &config.OutputOpts{Dir: "artifacts"},
		Targets: &config.TargetsOpts{Dir: filepath.Join("testdata", "targets")},
		Assets:  &config.AssetsOpts{},
		CMake:   &config.CMakeOpts{MinVersion: "3.7"},
		Log:     &config.LogOpts{},
	}
}

func testGenerateCtx(targetName, outputDir string) generate_ctx.GenerateCtx {
	return generate_ctx.GenerateCtx{
		TargetName:   targetName,
		OutputDir:    outputDir,
		ArtifactKeys: builtin.Names[:],
		CliOpts:      testCliOpts(),
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)

	require.NoError(t, Run(&genCtx))

	targetDir := filepath.Join(outputDir, "cheribsd-riscv64")

	toolchain, err := os.ReadFile(filepath.Join(targetDir, "toolchain.cmake"))
	require.NoError(t, err)
	assert.Contains(t, string(toolchain), "cmake_minimum_required(VERSION 3.7)")
	assert.Contains(t, string(toolchain),
		`set(CMAKE_SYSROOT "/opt/cheri/sdk/sysroot")`)
	assert.Contains(t, string(toolchain),
		`set(CMAKE_C_COMPILER "/opt/cheri/sdk/bin/clang")`)
	assert.Contains(t, string(toolchain),
		"set(CMAKE_TRY_COMPILE_TARGET_TYPE STATIC_LIBRARY)")
	assert.Contains(t, string(toolchain), `set(CMAKE_PREFIX_PATH `+
		`"/opt/cheri/sdk/sysroot/usr/libdata/pkgconfig;`+
		`/opt/cheri/sdk/sysroot/usr/local/libdata/pkgconfig")`)
	assert.NotContains(t, string(toolchain), "@")

	mountPath := filepath.Join(targetDir, "mount-rootfs.sh")
	mount, err := os.ReadFile(mountPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mount), "#!/bin/sh\n"))
	assert.Contains(t, string(mount), "set -e\n")
	assert.Contains(t, string(mount), "mkdir -p /nfsroot\n")
	assert.Contains(t, string(mount),
		"mount 10.0.2.2:/export/cheribsd-riscv64 /nfsroot/\n")
	// The symlink is guarded so the script can run repeatedly.
	assert.Contains(t, string(mount),
		"if [ ! -L /rootfs ]; then\n    ln -s /nfsroot /rootfs\nfi\n")

	info, err := os.Stat(mountPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(targetDir, "toolchain.cmake"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestRunForceStatic(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64-static", outputDir)

	require.NoError(t, Run(&genCtx))

	toolchain, err := os.ReadFile(filepath.Join(outputDir,
		"cheribsd-riscv64-static", "toolchain.cmake"))
	require.NoError(t, err)
	assert.Contains(t, string(toolchain), `set(CMAKE_SHARED_LIBRARY_SUFFIX ".a")`)
	assert.Contains(t, string(toolchain), `set(CMAKE_FIND_LIBRARY_SUFFIXES ".a")`)
	assert.Contains(t, string(toolchain),
		`set(CMAKE_EXTRA_SHARED_LIBRARY_SUFFIXES ".a")`)
}

func TestRunNoForceStatic(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)

	require.NoError(t, Run(&genCtx))

	toolchain, err := os.ReadFile(filepath.Join(outputDir,
		"cheribsd-riscv64", "toolchain.cmake"))
	require.NoError(t, err)
	assert.NotContains(t, string(toolchain), "CMAKE_SHARED_LIBRARY_SUFFIX")
	assert.NotContains(t, string(toolchain), "CMAKE_FIND_LIBRARY_SUFFIXES")
	assert.NotContains(t, string(toolchain), "CMAKE_EXTRA_SHARED_LIBRARY_SUFFIXES")
}

func TestRunDeterministic(t *testing.T) {
	firstDir := t.TempDir()
	secondDir := t.TempDir()

	genCtx := testGenerateCtx("cheribsd-riscv64", firstDir)
	require.NoError(t, Run(&genCtx))
	genCtx = testGenerateCtx("cheribsd-riscv64", secondDir)
	require.NoError(t, Run(&genCtx))

	for _, fileName := range []string{"toolchain.cmake", "mount-rootfs.sh"} {
		first, err := os.ReadFile(filepath.Join(firstDir, "cheribsd-riscv64", fileName))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(secondDir, "cheribsd-riscv64", fileName))
		require.NoError(t, err)
		assert.Equal(t, first, second, fileName)
	}
}

func TestRunVarsFromCli(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	genCtx.VarsFromCli = []string{"ROOTFS_DIR=/export/custom-rootfs"}

	require.NoError(t, Run(&genCtx))

	mount, err := os.ReadFile(filepath.Join(outputDir,
		"cheribsd-riscv64", "mount-rootfs.sh"))
	require.NoError(t, err)
	assert.Contains(t, string(mount),
		"mount 10.0.2.2:/export/custom-rootfs /nfsroot/\n")
}

func TestRunCheckMode(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	require.NoError(t, Run(&genCtx))

	checkCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	checkCtx.CheckMode = true
	require.NoError(t, Run(&checkCtx))

	toolchainPath := filepath.Join(outputDir, "cheribsd-riscv64", "toolchain.cmake")
	require.NoError(t, os.WriteFile(toolchainPath, []byte("# edited by hand\n"), 0644))

	checkCtx = testGenerateCtx("cheribsd-riscv64", outputDir)
	checkCtx.CheckMode = true
	assert.EqualError(t, Run(&checkCtx),
		`artifacts for target "cheribsd-riscv64" are out of date`)

	// Check mode never touches the artifacts.
	edited, err := os.ReadFile(toolchainPath)
	require.NoError(t, err)
	assert.Equal(t, "# edited by hand\n", string(edited))
}

func TestRunCheckModeMissingArtifacts(t *testing.T) {
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	genCtx.CheckMode = true

	assert.EqualError(t, Run(&genCtx),
		`artifacts for target "cheribsd-riscv64" are out of date`)
	assert.NoFileExists(t, filepath.Join(outputDir, "cheribsd-riscv64",
		"toolchain.cmake"))
}

func TestRunCheckModeStatFailure(t *testing.T) {
	outputDir := t.TempDir()
	// A file occupying the target directory path makes the artifact
	// unreadable for a reason other than absence.
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "cheribsd-riscv64"),
		[]byte(""), 0644))

	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	genCtx.CheckMode = true

	assert.ErrorContains(t, Run(&genCtx), "failed to check existing artifact")
}

func TestRunUnknownTarget(t *testing.T) {
	genCtx := testGenerateCtx("unknown-target", t.TempDir())

	assert.EqualError(t, Run(&genCtx), `target "unknown-target" is not found`)
}

func TestRunUnknownArtifact(t *testing.T) {
	genCtx := testGenerateCtx("cheribsd-riscv64", t.TempDir())
	genCtx.ArtifactKeys = []string{"bogus"}

	assert.ErrorContains(t, Run(&genCtx), `unknown artifact "bogus"`)
}

func TestRunCopiesAssets(t *testing.T) {
	assetsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "run-qemu.sh"),
		[]byte("#!/bin/sh\n"), 0755))

	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	genCtx.CliOpts.Assets.Dir = assetsDir

	require.NoError(t, Run(&genCtx))
	assert.FileExists(t, filepath.Join(outputDir, "cheribsd-riscv64",
		"assets", "run-qemu.sh"))
}

func TestRunAuditLog(t *testing.T) {
	logDir := t.TempDir()
	outputDir := t.TempDir()
	genCtx := testGenerateCtx("cheribsd-riscv64", outputDir)
	genCtx.CliOpts.Log = &config.LogOpts{Dir: logDir, MaxSize: 5}

	require.NoError(t, Run(&genCtx))

	logContent, err := os.ReadFile(filepath.Join(logDir, auditLogName))
	require.NoError(t, err)
	assert.Contains(t, string(logContent), "target cheribsd-riscv64: wrote")
	assert.Contains(t, string(logContent), "toolchain.cmake")
	assert.Contains(t, string(logContent), "mount-rootfs.sh")
}

func TestFillCtx(t *testing.T) {
	cliOpts := testCliOpts()
	var genCtx generate_ctx.GenerateCtx

	require.NoError(t, FillCtx(cliOpts, &genCtx, []string{"cheribsd-riscv64"}))
	assert.Equal(t, "cheribsd-riscv64", genCtx.TargetName)
	assert.Equal(t, "artifacts", genCtx.OutputDir)
	assert.Equal(t, builtin.Names[:], genCtx.ArtifactKeys)
	assert.NotEmpty(t, genCtx.WorkDir)
}

func TestFillCtxMissingTarget(t *testing.T) {
	cliOpts := testCliOpts()
	var genCtx generate_ctx.GenerateCtx

	assert.ErrorContains(t, FillCtx(cliOpts, &genCtx, nil),
		"missing target name argument")
}

func TestFillCtxKeepsExplicitValues(t *testing.T) {
	cliOpts := testCliOpts()
	genCtx := generate_ctx.GenerateCtx{
		OutputDir:    "/tmp/custom-output",
		ArtifactKeys: []string{builtin.QemuMountRootfs},
	}

	require.NoError(t, FillCtx(cliOpts, &genCtx, []string{"cheribsd-riscv64"}))
	assert.Equal(t, "/tmp/custom-output", genCtx.OutputDir)
	assert.Equal(t, []string{builtin.QemuMountRootfs}, genCtx.ArtifactKeys)
}
