package classifier

// Counter names produced by the default rule table.
const (
	CounterTotal = "total"

	CounterFlavorBeta    = "flavor.beta"
	CounterFlavorStable  = "flavor.stable"
	CounterFlavorTrunk   = "flavor.trunk"
	CounterFlavorPTB307  = "flavor.ptb307"
	CounterFlavorUnknown = "flavor.unknown"

	CounterOSX     = "os.osx"
	CounterWindows = "os.windows"
	CounterLinux   = "os.linux"

	CounterOSXPPC          = "os.osx.ppc"
	CounterOSXIntel        = "os.osx.intel"
	CounterOSXIntelNative  = "os.osx.intel.native"
	CounterOSXIntelRosetta = "os.osx.intel.rosetta"
	CounterOSXUnknown      = "os.osx.unknown"
	CounterLinuxARM        = "os.linux.arm"

	CounterCPUPPC   = "cpu.ppc"
	CounterCPUIntel = "cpu.intel"
	CounterCPUARM   = "cpu.arm"

	CounterMatlab              = "env.matlab"
	CounterOctave              = "env.octave"
	CounterMatlabPreR2007a     = "env.matlab.pre_r2007a"
	CounterMatlabR2007aPlus    = "env.matlab.r2007a_plus"
	CounterWinMatlabPreR2007a  = "win.matlab.pre_r2007a"
	CounterWinMatlabR2007aPlus = "win.matlab.r2007a_plus"

	CounterWordSize32 = "wordsize.32"
	CounterWordSize64 = "wordsize.64"

	CounterMatlabOSX     = "combo.matlab.osx"
	CounterMatlabWindows = "combo.matlab.windows"
	CounterMatlabLinux   = "combo.matlab.linux"
	CounterOctaveOSX     = "combo.octave.osx"
	CounterOctaveWindows = "combo.octave.windows"
	CounterOctaveLinux   = "combo.octave.linux"
)

// DefaultRules returns the built-in classification table.
func DefaultRules() RuleSet {
	var rules []Rule
	rules = append(rules, flavorRules()...)
	rules = append(rules, osRules()...)
	rules = append(rules, cpuRules()...)
	rules = append(rules, environmentRules()...)
	rules = append(rules, wordSizeRules()...)
	rules = append(rules, macArchRules()...)
	rules = append(rules, combinationRules()...)

	return RuleSet{
		Rules: rules,
		Derived: []Derived{
			{Counter: CounterMatlabR2007aPlus, From: CounterMatlab, Minus: []string{CounterMatlabPreR2007a}},
			{Counter: CounterWinMatlabR2007aPlus, From: CounterMatlabWindows, Minus: []string{CounterWinMatlabPreR2007a}},
		},
		Exclusive: []Category{CategoryFlavor, CategoryOS},
	}
}

// "beta" and "current" name the same channel in different releases.
func flavorRules() []Rule {
	return []Rule{
		{Category: CategoryFlavor, Match: "<FLAVOR>beta</FLAVOR>", Counter: CounterFlavorBeta},
		{Category: CategoryFlavor, Match: "<FLAVOR>current</FLAVOR>", Counter: CounterFlavorBeta},
		{Category: CategoryFlavor, Match: "<FLAVOR>stable</FLAVOR>", Counter: CounterFlavorStable},
		{Category: CategoryFlavor, Match: "<FLAVOR>trunk</FLAVOR>", Counter: CounterFlavorTrunk},
		{Category: CategoryFlavor, Match: "<FLAVOR>Psychtoolbox-3.0.7</FLAVOR>", Counter: CounterFlavorPTB307},
		{Category: CategoryFlavor, Match: "<FLAVOR>unknown</FLAVOR>", Counter: CounterFlavorUnknown},
	}
}

func osRules() []Rule {
	version := func(match, counter string) Rule {
		return Rule{Category: CategoryOSVersion, Match: match, Counter: counter, Sets: FlagOSVersion}
	}

	return []Rule{
		{Category: CategoryOS, Match: "<OS>MacOS-X", Counter: CounterOSX, Sets: FlagOSX},
		{Category: CategoryOS, Match: "<OS>Windows", Counter: CounterWindows, Sets: FlagWindows},
		{Category: CategoryOS, Match: "<OS>Linux", Counter: CounterLinux, Sets: FlagLinux},

		version("<OS>MacOS-X 10.3", "osversion.osx.10.3"),
		version("<OS>MacOS-X 10.4", "osversion.osx.10.4"),
		version("<OS>MacOS-X 10.5", "osversion.osx.10.5"),
		version("<OS>MacOS-X 10.6", "osversion.osx.10.6"),
		version("<OS>MacOS-X 10.7", "osversion.osx.10.7"),
		version("<OS>Windows 2000", "osversion.windows.2000"),
		version("<OS>Windows XP", "osversion.windows.xp"),
		version("<OS>Windows Vista", "osversion.windows.vista"),
		version("<OS>Windows 7", "osversion.windows.7"),
		version("<OS>Linux 2.4", "osversion.linux.2.4"),
		version("<OS>Linux 2.6", "osversion.linux.2.6"),
		version("<OS>Linux 3.", "osversion.linux.3"),

		{Category: CategoryOSVersion, Counter: "osversion.osx.other", Requires: []Flag{FlagOSX}, Excludes: []Flag{FlagOSVersion}},
		{Category: CategoryOSVersion, Counter: "osversion.windows.other", Requires: []Flag{FlagWindows}, Excludes: []Flag{FlagOSVersion}},
		{Category: CategoryOSVersion, Counter: "osversion.linux.other", Requires: []Flag{FlagLinux}, Excludes: []Flag{FlagOSVersion}},
	}
}

func cpuRules() []Rule {
	return []Rule{
		{Category: CategoryCPU, Match: "<CPUARCH>ppc", Counter: CounterCPUPPC, Sets: FlagPPC},
		{Category: CategoryCPU, Match: "<CPUARCH>i386", Counter: CounterCPUIntel, Sets: FlagIntel},
		{Category: CategoryCPU, Match: "<CPUARCH>i686", Counter: CounterCPUIntel, Sets: FlagIntel},
		{Category: CategoryCPU, Match: "<CPUARCH>x86_64", Counter: CounterCPUIntel, Sets: FlagIntel},
		{Category: CategoryCPU, Match: "<CPUARCH>arm", Counter: CounterCPUARM, Sets: FlagARM},
	}
}

func environmentRules() []Rule {
	matlab := func(match, counter string) Rule {
		return Rule{Category: CategoryEnvVersion, Match: match, Counter: counter, Requires: []Flag{FlagMatlab}}
	}
	octave := func(match, counter string) Rule {
		return Rule{Category: CategoryEnvVersion, Match: match, Counter: counter, Requires: []Flag{FlagOctave}}
	}
	// Matlab 6.x through 7.3 (R2006b).
	preR2007a := func(match string) Rule {
		r := matlab(match, CounterMatlabPreR2007a)
		r.Sets = FlagPreR2007a
		return r
	}

	return []Rule{
		{Category: CategoryEnvironment, Match: "<ENVIRONMENT>Matlab", Counter: CounterMatlab, Sets: FlagMatlab},
		{Category: CategoryEnvironment, Match: "<ENVIRONMENT>Octave", Counter: CounterOctave, Sets: FlagOctave},

		matlab("<ENVVERSION>6.", "envversion.matlab.6"),
		matlab("<ENVVERSION>7.", "envversion.matlab.7"),
		matlab("<ENVVERSION>8.", "envversion.matlab.8"),
		preR2007a("<ENVVERSION>6."),
		preR2007a("<ENVVERSION>7.0."),
		preR2007a("<ENVVERSION>7.1."),
		preR2007a("<ENVVERSION>7.2."),
		preR2007a("<ENVVERSION>7.3."),

		octave("<ENVVERSION>2.", "envversion.octave.2"),
		octave("<ENVVERSION>3.0.", "envversion.octave.3.0"),
		octave("<ENVVERSION>3.2.", "envversion.octave.3.2"),
		octave("<ENVVERSION>3.4.", "envversion.octave.3.4"),
		octave("<ENVVERSION>3.6.", "envversion.octave.3.6"),
	}
}

func wordSizeRules() []Rule {
	bits64 := func(match string) Rule {
		return Rule{Category: CategoryWordSize, Match: match, Counter: CounterWordSize64, Sets: FlagBits64}
	}
	bits32 := func(match string) Rule {
		return Rule{Category: CategoryWordSize, Match: match, Counter: CounterWordSize32, Sets: FlagBits32}
	}

	return []Rule{
		bits64("<ENVARCH>PCWIN64"),
		bits64("<ENVARCH>GLNXA64"),
		bits64("<ENVARCH>MACI64"),
		bits64("<ENVARCH>x86_64"),
		bits32("<ENVARCH>PCWIN</ENVARCH>"),
		bits32("<ENVARCH>GLNX86"),
		bits32("<ENVARCH>MACI</ENVARCH>"),
		bits32("<ENVARCH>MAC</ENVARCH>"),
		bits32("<ENVARCH>i386"),
		bits32("<ENVARCH>i686"),
	}
}

// PowerPC takes precedence over Intel; an Intel Mac without a native
// Matlab architecture runs under Rosetta.
func macArchRules() []Rule {
	return []Rule{
		{Category: CategoryMacArch, Counter: CounterOSXPPC, Requires: []Flag{FlagOSX, FlagPPC}},
		{Category: CategoryMacArch, Counter: CounterOSXIntel, Requires: []Flag{FlagOSX, FlagIntel}, Excludes: []Flag{FlagPPC}},
		{
			Category: CategoryMacArch,
			Match:    "<ENVARCH>MACI",
			Counter:  CounterOSXIntelNative,
			Sets:     FlagMacNative,
			Requires: []Flag{FlagOSX, FlagIntel},
			Excludes: []Flag{FlagPPC},
		},
		{Category: CategoryMacArch, Counter: CounterOSXIntelRosetta, Requires: []Flag{FlagOSX, FlagIntel}, Excludes: []Flag{FlagPPC, FlagMacNative}},
		{Category: CategoryMacArch, Counter: CounterOSXUnknown, Requires: []Flag{FlagOSX}, Excludes: []Flag{FlagPPC, FlagIntel}},
		{Category: CategoryMacArch, Counter: CounterLinuxARM, Requires: []Flag{FlagLinux, FlagARM}},
	}
}

func combinationRules() []Rule {
	combo := func(counter string, flags ...Flag) Rule {
		return Rule{Category: CategoryCombination, Counter: counter, Requires: flags}
	}

	return []Rule{
		combo(CounterMatlabOSX, FlagMatlab, FlagOSX),
		combo(CounterMatlabWindows, FlagMatlab, FlagWindows),
		combo(CounterMatlabLinux, FlagMatlab, FlagLinux),
		combo(CounterOctaveOSX, FlagOctave, FlagOSX),
		combo(CounterOctaveWindows, FlagOctave, FlagWindows),
		combo(CounterOctaveLinux, FlagOctave, FlagLinux),
		combo(CounterWinMatlabPreR2007a, FlagWindows, FlagMatlab, FlagPreR2007a),
	}
}
