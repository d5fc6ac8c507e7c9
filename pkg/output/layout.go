package output

import "github.com/ccollicutt/reglog/pkg/classifier"

// RowSpec places one counter in a section.
type RowSpec struct {
	Label   string
	Counter string

	// PercentOf names the denominator counter. Empty means no percentage.
	PercentOf string
}

// SectionSpec describes one breakdown table.
type SectionSpec struct {
	Title string
	Rows  []RowSpec
}

// DefaultLayout returns the section layout for the built-in counters.
func DefaultLayout() []SectionSpec {
	const total = classifier.CounterTotal

	ofTotal := func(label, counter string) RowSpec {
		return RowSpec{Label: label, Counter: counter, PercentOf: total}
	}
	plain := func(label, counter string) RowSpec {
		return RowSpec{Label: label, Counter: counter}
	}

	return []SectionSpec{
		{
			Title: "Breakdown by flavor",
			Rows: []RowSpec{
				plain("'beta' / 'current'", classifier.CounterFlavorBeta),
				plain("'stable'", classifier.CounterFlavorStable),
				plain("'trunk'", classifier.CounterFlavorTrunk),
				plain("'Psychtoolbox-3.0.7'", classifier.CounterFlavorPTB307),
				plain("'unknown'", classifier.CounterFlavorUnknown),
			},
		},
		{
			Title: "Breakdown by operating system",
			Rows: []RowSpec{
				ofTotal("MacOS-X", classifier.CounterOSX),
				ofTotal("Windows", classifier.CounterWindows),
				ofTotal("Linux", classifier.CounterLinux),
			},
		},
		{
			Title: "Breakdown by operating system version",
			Rows: []RowSpec{
				plain("MacOS-X 10.3", "osversion.osx.10.3"),
				plain("MacOS-X 10.4", "osversion.osx.10.4"),
				plain("MacOS-X 10.5", "osversion.osx.10.5"),
				plain("MacOS-X 10.6", "osversion.osx.10.6"),
				plain("MacOS-X 10.7", "osversion.osx.10.7"),
				plain("MacOS-X other", "osversion.osx.other"),
				plain("Windows 2000", "osversion.windows.2000"),
				plain("Windows XP", "osversion.windows.xp"),
				plain("Windows Vista", "osversion.windows.vista"),
				plain("Windows 7", "osversion.windows.7"),
				plain("Windows other", "osversion.windows.other"),
				plain("Linux 2.4", "osversion.linux.2.4"),
				plain("Linux 2.6", "osversion.linux.2.6"),
				plain("Linux 3.x", "osversion.linux.3"),
				plain("Linux other", "osversion.linux.other"),
			},
		},
		{
			Title: "Breakdown by CPU architecture",
			Rows: []RowSpec{
				ofTotal("PowerPC", classifier.CounterCPUPPC),
				ofTotal("Intel", classifier.CounterCPUIntel),
				ofTotal("ARM", classifier.CounterCPUARM),
			},
		},
		{
			Title: "MacOS-X by system architecture",
			Rows: []RowSpec{
				{Label: "PowerPC", Counter: classifier.CounterOSXPPC, PercentOf: classifier.CounterOSX},
				{Label: "Intel", Counter: classifier.CounterOSXIntel, PercentOf: classifier.CounterOSX},
				{Label: "Intel, native runtime", Counter: classifier.CounterOSXIntelNative, PercentOf: classifier.CounterOSXIntel},
				{Label: "Intel, runtime under Rosetta", Counter: classifier.CounterOSXIntelRosetta, PercentOf: classifier.CounterOSXIntel},
				{Label: "Unknown", Counter: classifier.CounterOSXUnknown, PercentOf: classifier.CounterOSX},
			},
		},
		{
			Title: "Breakdown by runtime environment",
			Rows: []RowSpec{
				ofTotal("Matlab", classifier.CounterMatlab),
				ofTotal("Octave", classifier.CounterOctave),
				{Label: "Matlab before R2007a", Counter: classifier.CounterMatlabPreR2007a, PercentOf: classifier.CounterMatlab},
				{Label: "Matlab R2007a or later", Counter: classifier.CounterMatlabR2007aPlus, PercentOf: classifier.CounterMatlab},
			},
		},
		{
			Title: "Breakdown by runtime version",
			Rows: []RowSpec{
				plain("Matlab 6.x", "envversion.matlab.6"),
				plain("Matlab 7.x", "envversion.matlab.7"),
				plain("Matlab 8.x", "envversion.matlab.8"),
				plain("Octave 2.x", "envversion.octave.2"),
				plain("Octave 3.0", "envversion.octave.3.0"),
				plain("Octave 3.2", "envversion.octave.3.2"),
				plain("Octave 3.4", "envversion.octave.3.4"),
				plain("Octave 3.6", "envversion.octave.3.6"),
			},
		},
		{
			Title: "Breakdown by word size",
			Rows: []RowSpec{
				ofTotal("32 bit", classifier.CounterWordSize32),
				ofTotal("64 bit", classifier.CounterWordSize64),
			},
		},
		{
			Title: "Runtime by operating system",
			Rows: []RowSpec{
				ofTotal("Matlab on MacOS-X", classifier.CounterMatlabOSX),
				ofTotal("Matlab on Windows", classifier.CounterMatlabWindows),
				ofTotal("Matlab on Linux", classifier.CounterMatlabLinux),
				ofTotal("Octave on MacOS-X", classifier.CounterOctaveOSX),
				ofTotal("Octave on Windows", classifier.CounterOctaveWindows),
				ofTotal("Octave on Linux", classifier.CounterOctaveLinux),
				{Label: "Matlab on Windows before R2007a", Counter: classifier.CounterWinMatlabPreR2007a, PercentOf: classifier.CounterMatlabWindows},
				{Label: "Matlab on Windows R2007a or later", Counter: classifier.CounterWinMatlabR2007aPlus, PercentOf: classifier.CounterMatlabWindows},
				ofTotal("Linux on ARM", classifier.CounterLinuxARM),
			},
		},
	}
}

// TrimLayout drops rows whose counter is not in counters, and sections left
// without rows.
func TrimLayout(layout []SectionSpec, counters map[string]int) []SectionSpec {
	out := make([]SectionSpec, 0, len(layout))
	for _, def := range layout {
		var rows []RowSpec
		for _, rs := range def.Rows {
			if _, ok := counters[rs.Counter]; ok {
				rows = append(rows, rs)
			}
		}
		if len(rows) > 0 {
			out = append(out, SectionSpec{Title: def.Title, Rows: rows})
		}
	}
	return out
}
