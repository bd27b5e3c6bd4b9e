// Package log provides leveled, structured logging partitioned into modules,
// so that verbose tracing can be enabled per emulated subsystem.
package log

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll ModuleMask = 0xFFFFFFFFFFFFFFFF
)

// Standard modules. Additional ones can be registered with NewModule.
const (
	ModEmu Module = iota + 1
	ModCPU
	ModMem

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0

var disabled = false

var modNames = []string{
	"<error>", "emu", "cpu", "mem",
}

func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	names := make([]string, len(modNames)-1)
	copy(names, modNames[1:])
	return names
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

// Disable turns off all logging, whatever the level.
func Disable() {
	disabled = true
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	if disabled {
		return false
	}
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) DebugZ(msg string) *EntryZ { return newEntryZ(mod, DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return newEntryZ(mod, InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return newEntryZ(mod, WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return newEntryZ(mod, ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return newEntryZ(mod, FatalLevel, msg) }
