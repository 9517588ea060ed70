// Package builtin ships the artifact templates compiled into the cherigen
// binary.
package builtin

import (
	"embed"

	"github.com/cheritools/cherigen/cli/templates"
)

//go:embed templates/*
var templatesFS embed.FS

const (
	// CMakeToolchain is the key of the CMake cross-toolchain file template.
	CMakeToolchain = "cmake-toolchain"
	// QemuMountRootfs is the key of the guest NFS rootfs mount script
	// template.
	QemuMountRootfs = "qemu-mount-rootfs"
)

// Names contains built-in template keys.
var Names = [...]string{CMakeToolchain, QemuMountRootfs}

var specs = []templates.Spec{
	{
		Key:      CMakeToolchain,
		Path:     "templates/cmake-toolchain.cmake.in",
		Format:   templates.FormatCMake,
		FileName: "toolchain.cmake",
		Mode:     0644,
	},
	{
		Key:      QemuMountRootfs,
		Path:     "templates/qemu-mount-rootfs.sh.in",
		Format:   templates.FormatShell,
		FileName: "mount-rootfs.sh",
		Mode:     0755,
	},
}

// Load parses the built-in templates into a store.
func Load() (*templates.Store, error) {
	return templates.Load(templatesFS, specs)
}
