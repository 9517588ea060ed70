package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDefaultsDerivesSDKLayout(t *testing.T) {
	descriptor := Descriptor{
		Name:      "cheribsd-riscv64-purecap",
		Processor: "riscv64",
		Triple:    "riscv64-unknown-freebsd13",
	}
	descriptor.FillDefaults("/opt/cheri/sdk", "128")

	assert.Equal(t, "FreeBSD", descriptor.SystemName)
	assert.Equal(t, "/opt/cheri/sdk", descriptor.SDKDir)
	assert.Equal(t, "/opt/cheri/sdk/bin", descriptor.SDKBinDir)
	assert.Equal(t, "/opt/cheri/sdk/bin", descriptor.CompilerBinDir)
	assert.Equal(t, "/opt/cheri/sdk/sysroot128", descriptor.Sysroot)
	assert.Equal(t, "/opt/cheri/sdk/bin/clang", descriptor.CCompiler)
	assert.Equal(t, "/opt/cheri/sdk/bin/clang++", descriptor.CXXCompiler)
	assert.Equal(t, "/opt/cheri/sdk/bin/clang", descriptor.ASMCompiler)
	assert.Equal(t, []string{
		"/opt/cheri/sdk/sysroot128/usr/libdata/pkgconfig",
		"/opt/cheri/sdk/sysroot128/usr/local/libdata/pkgconfig",
	}, descriptor.PkgConfigDirs)
	assert.Equal(t, "/export/cheribsd-riscv64-purecap", descriptor.RootfsDir)
}

func TestFillDefaultsKeepsExplicitValues(t *testing.T) {
	descriptor := Descriptor{
		Name:           "custom",
		SystemName:     "CheriBSD",
		CompilerBinDir: "/opt/llvm/bin",
		Sysroot:        "/srv/sysroot",
		RootfsDir:      "/srv/rootfs",
	}
	descriptor.FillDefaults("/opt/cheri/sdk", "")

	assert.Equal(t, "CheriBSD", descriptor.SystemName)
	assert.Equal(t, "/opt/llvm/bin", descriptor.CompilerBinDir)
	assert.Equal(t, "/srv/sysroot", descriptor.Sysroot)
	assert.Equal(t, "/opt/llvm/bin/clang", descriptor.CCompiler)
	assert.Equal(t, "/srv/rootfs", descriptor.RootfsDir)
}

func TestValidate(t *testing.T) {
	descriptor := Descriptor{Name: "incomplete"}
	descriptor.FillDefaults("/opt/cheri/sdk", "")

	err := descriptor.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, `target "incomplete": processor must not be empty`)

	descriptor.Processor = "riscv64"
	err = descriptor.Validate()
	assert.EqualError(t, err, `target "incomplete": triple must not be empty`)

	descriptor.Triple = "riscv64-unknown-freebsd13"
	assert.NoError(t, descriptor.Validate())
}

func TestLinkage(t *testing.T) {
	descriptor := Descriptor{}
	assert.Equal(t, LinkageDefault, descriptor.Linkage())

	descriptor.ForceStatic = true
	assert.Equal(t, LinkageStatic, descriptor.Linkage())
}

func TestToolchainValues(t *testing.T) {
	descriptor := Descriptor{
		Name:      "cheribsd-riscv64-purecap",
		Processor: "riscv64",
		Triple:    "riscv64-unknown-freebsd13",
	}
	descriptor.FillDefaults("/opt/cheri/sdk", "")

	values := descriptor.ToolchainValues("3.7")
	assert.Equal(t, "3.7", values["TOOLCHAIN_CMAKE_MIN_VERSION"])
	assert.Equal(t, "FreeBSD", values["TOOLCHAIN_SYSTEM_NAME"])
	assert.Equal(t, "riscv64", values["TOOLCHAIN_SYSTEM_PROCESSOR"])
	assert.Equal(t, "riscv64-unknown-freebsd13", values["TOOLCHAIN_TARGET_TRIPLE"])
	assert.Equal(t, "/opt/cheri/sdk/bin", values["TOOLCHAIN_SDK_BINDIR"])
	assert.Equal(t, "/opt/cheri/sdk/sysroot", values["TOOLCHAIN_SYSROOT"])
	assert.Equal(t, false, values["FORCE_STATIC"])
	assert.Equal(t, false, values["USE_EXTERNAL_TOOLCHAIN"])
	assert.Equal(t, false, values["DETECT_BINUTILS_PREFIX"])
}

func TestMountValues(t *testing.T) {
	descriptor := Descriptor{RootfsDir: "/export/cheribsd-riscv64"}
	assert.Equal(t, map[string]any{"ROOTFS_DIR": "/export/cheribsd-riscv64"},
		descriptor.MountValues())
}
