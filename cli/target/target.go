// Package target describes CheriBSD cross-compilation targets and resolves
// them into template parameter values.
package target

import (
	"fmt"
	"path/filepath"
)

// Linkage tells how artifacts rendered for a target instruct the linker to
// resolve libraries.
type Linkage string

const (
	// LinkageDefault keeps the compiler driver's default library search.
	LinkageDefault Linkage = "default"
	// LinkageStatic restricts library search to static archives.
	LinkageStatic Linkage = "static"
)

// Descriptor describes one cross-compilation target. String fields that are
// left empty in target files are derived from the SDK layout by
// FillDefaults before use.
type Descriptor struct {
	// Name is the unique target name, e.g. "cheribsd-riscv64-purecap".
	Name string `mapstructure:"name"`
	// SystemName is the target operating system as CMake names it.
	SystemName string `mapstructure:"system_name"`
	// Processor is the target processor architecture as CMake names it.
	Processor string `mapstructure:"processor"`
	// Triple is the compiler target triple.
	Triple string `mapstructure:"triple"`
	// SDKDir is the root of the SDK installation.
	SDKDir string `mapstructure:"sdk_dir"`
	// SDKBinDir is the directory with the SDK tools.
	SDKBinDir string `mapstructure:"sdk_bin_dir"`
	// CompilerBinDir is the directory with the cross-compiler binaries.
	CompilerBinDir string `mapstructure:"compiler_bin_dir"`
	// Sysroot is the target sysroot directory.
	Sysroot string `mapstructure:"sysroot"`
	// CCompiler is the path of the C cross-compiler.
	CCompiler string `mapstructure:"c_compiler"`
	// CXXCompiler is the path of the C++ cross-compiler.
	CXXCompiler string `mapstructure:"cxx_compiler"`
	// ASMCompiler is the path of the assembler.
	ASMCompiler string `mapstructure:"asm_compiler"`
	// CommonFlags are compile flags shared by all languages.
	CommonFlags string `mapstructure:"common_flags"`
	// LinkerFlags are flags passed to all link steps.
	LinkerFlags string `mapstructure:"linker_flags"`
	// CFlags are extra C compile flags.
	CFlags string `mapstructure:"c_flags"`
	// CXXFlags are extra C++ compile flags.
	CXXFlags string `mapstructure:"cxx_flags"`
	// ASMFlags are extra assembler flags.
	ASMFlags string `mapstructure:"asm_flags"`
	// ForceStatic restricts library search in rendered toolchain files to
	// static archives.
	ForceStatic bool `mapstructure:"force_static"`
	// PkgConfigDirs are the pkg-config search directories of the sysroot.
	PkgConfigDirs []string `mapstructure:"pkg_config_dirs"`
	// RootfsDir is the host path of the cross-built root filesystem
	// exported to VM guests.
	RootfsDir string `mapstructure:"rootfs_dir"`
	// UseExternalToolchain injects CMAKE_*_COMPILER_EXTERNAL_TOOLCHAIN
	// lines pointing at the SDK bin directory.
	UseExternalToolchain bool `mapstructure:"use_external_toolchain"`
	// DetectBinutilsPrefix derives the ar and ranlib tool names from the
	// target triple.
	DetectBinutilsPrefix bool `mapstructure:"detect_binutils_prefix"`
}

// Linkage returns the linkage mode of the target.
func (d *Descriptor) Linkage() Linkage {
	if d.ForceStatic {
		return LinkageStatic
	}
	return LinkageDefault
}

// FillDefaults derives unset paths from the SDK layout: tools live in
// <sdk>/bin, compilers are clang/clang++ next to the tools, the sysroot is
// <sdk>/sysroot<suffix> and pkg-config files live under the sysroot.
func (d *Descriptor) FillDefaults(sdkDir, sysrootSuffix string) {
	if d.SystemName == "" {
		d.SystemName = "FreeBSD"
	}
	if d.SDKDir == "" {
		d.SDKDir = sdkDir
	}
	if d.SDKBinDir == "" {
		d.SDKBinDir = filepath.Join(d.SDKDir, "bin")
	}
	if d.CompilerBinDir == "" {
		d.CompilerBinDir = d.SDKBinDir
	}
	if d.Sysroot == "" {
		d.Sysroot = filepath.Join(d.SDKDir, "sysroot"+sysrootSuffix)
	}
	if d.CCompiler == "" {
		d.CCompiler = filepath.Join(d.CompilerBinDir, "clang")
	}
	if d.CXXCompiler == "" {
		d.CXXCompiler = filepath.Join(d.CompilerBinDir, "clang++")
	}
	if d.ASMCompiler == "" {
		d.ASMCompiler = d.CCompiler
	}
	if len(d.PkgConfigDirs) == 0 {
		d.PkgConfigDirs = []string{
			filepath.Join(d.Sysroot, "usr/libdata/pkgconfig"),
			filepath.Join(d.Sysroot, "usr/local/libdata/pkgconfig"),
		}
	}
	if d.RootfsDir == "" && d.Name != "" {
		d.RootfsDir = "/export/" + d.Name
	}
}

// Validate checks that the descriptor is complete enough to render all
// artifacts. It expects FillDefaults to have run.
func (d *Descriptor) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"system_name", d.SystemName},
		{"processor", d.Processor},
		{"triple", d.Triple},
		{"sdk_bin_dir", d.SDKBinDir},
		{"compiler_bin_dir", d.CompilerBinDir},
		{"sysroot", d.Sysroot},
		{"c_compiler", d.CCompiler},
		{"cxx_compiler", d.CXXCompiler},
		{"asm_compiler", d.ASMCompiler},
		{"rootfs_dir", d.RootfsDir},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("target %q: %s must not be empty", d.Name, field.name)
		}
	}
	return nil
}

// ToolchainValues returns the substitution values for the CMake toolchain
// template.
func (d *Descriptor) ToolchainValues(cmakeMinVersion string) map[string]any {
	return map[string]any{
		"TOOLCHAIN_CMAKE_MIN_VERSION": cmakeMinVersion,
		"TOOLCHAIN_SYSTEM_NAME":       d.SystemName,
		"TOOLCHAIN_SYSTEM_PROCESSOR":  d.Processor,
		"TOOLCHAIN_TARGET_TRIPLE":     d.Triple,
		"TOOLCHAIN_SDK_BINDIR":        d.SDKBinDir,
		"TOOLCHAIN_COMPILER_BINDIR":   d.CompilerBinDir,
		"TOOLCHAIN_SYSROOT":           d.Sysroot,
		"TOOLCHAIN_C_COMPILER":        d.CCompiler,
		"TOOLCHAIN_CXX_COMPILER":      d.CXXCompiler,
		"TOOLCHAIN_ASM_COMPILER":      d.ASMCompiler,
		"TOOLCHAIN_COMMON_FLAGS":      d.CommonFlags,
		"TOOLCHAIN_LINKER_FLAGS":      d.LinkerFlags,
		"TOOLCHAIN_C_FLAGS":           d.CFlags,
		"TOOLCHAIN_CXX_FLAGS":         d.CXXFlags,
		"TOOLCHAIN_ASM_FLAGS":         d.ASMFlags,
		"TOOLCHAIN_PKGCONFIG_DIRS":    append([]string{}, d.PkgConfigDirs...),
		"FORCE_STATIC":                d.ForceStatic,
		"USE_EXTERNAL_TOOLCHAIN":      d.UseExternalToolchain,
		"DETECT_BINUTILS_PREFIX":      d.DetectBinutilsPrefix,
	}
}

// MountValues returns the substitution values for the rootfs mount script
// template.
func (d *Descriptor) MountValues() map[string]any {
	return map[string]any{
		"ROOTFS_DIR": d.RootfsDir,
	}
}
