package target

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/cheritools/cherigen/cli/util"
)

// builtinDescriptors lists the targets compiled into cherigen. SDK paths
// are left empty and derived from the configuration by FillDefaults.
func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{
			Name:        "cheribsd-riscv64-purecap",
			Processor:   "riscv64",
			Triple:      "riscv64-unknown-freebsd13",
			CommonFlags: "-march=rv64imafdcxcheri -mabi=l64pc128d -mno-relax",
			LinkerFlags: "-fuse-ld=lld",
			RootfsDir:   "/export/cheribsd-riscv64-purecap",
		},
		{
			Name:        "cheribsd-riscv64-hybrid",
			Processor:   "riscv64",
			Triple:      "riscv64-unknown-freebsd13",
			CommonFlags: "-march=rv64imafdcxcheri -mabi=lp64d -mno-relax",
			LinkerFlags: "-fuse-ld=lld",
			RootfsDir:   "/export/cheribsd-riscv64-hybrid",
		},
		{
			Name:        "cheribsd-morello-purecap",
			Processor:   "aarch64",
			Triple:      "aarch64-unknown-freebsd13",
			CommonFlags: "-march=morello+c64 -mabi=purecap",
			LinkerFlags: "-fuse-ld=lld",
			RootfsDir:   "/export/cheribsd-morello-purecap",
		},
		{
			Name:        "cheribsd-mips64-purecap",
			Processor:   "mips64",
			Triple:      "mips64-unknown-freebsd13",
			CommonFlags: "-mabi=purecap -mcpu=cheri128 -cheri=128",
			LinkerFlags: "-fuse-ld=lld",
			RootfsDir:   "/export/cheribsd-mips64-purecap",
		},
		{
			Name:        "cheribsd-aarch64",
			Processor:   "aarch64",
			Triple:      "aarch64-unknown-freebsd13",
			LinkerFlags: "-fuse-ld=lld",
			RootfsDir:   "/export/cheribsd-aarch64",
		},
	}
}

// Registry resolves target names to descriptors. Built-in targets are
// registered first; descriptors loaded from a directory override them by
// name.
type Registry struct {
	descriptors map[string]Descriptor
}

// NewRegistry creates a registry with the built-in targets.
func NewRegistry() *Registry {
	registry := &Registry{descriptors: make(map[string]Descriptor)}
	for _, descriptor := range builtinDescriptors() {
		registry.descriptors[descriptor.Name] = descriptor
	}
	return registry
}

// LoadDir loads every *.yaml and *.yml target file found in dir. A
// descriptor without a name takes the file name without extension. A
// missing directory is not an error: built-in targets stay available.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read target directory %s: %s", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		descriptor, err := loadDescriptorFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if descriptor.Name == "" {
			descriptor.Name = strings.TrimSuffix(name, ext)
		}
		r.descriptors[descriptor.Name] = descriptor
	}
	return nil
}

// loadDescriptorFile parses one target descriptor file.
func loadDescriptorFile(path string) (Descriptor, error) {
	var descriptor Descriptor

	raw, err := util.ParseYAML(path)
	if err != nil {
		return descriptor, fmt.Errorf("failed to load target file %s: %s", path, err)
	}
	if err := mapstructure.Decode(raw, &descriptor); err != nil {
		return descriptor, fmt.Errorf("failed to decode target file %s: %s", path, err)
	}
	return descriptor, nil
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (Descriptor, error) {
	descriptor, ok := r.descriptors[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("target %q is not found", name)
	}
	return descriptor, nil
}

// Names returns the registered target names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered descriptors sorted by name.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.descriptors))
	for _, name := range r.Names() {
		descriptors = append(descriptors, r.descriptors[name])
	}
	return descriptors
}
