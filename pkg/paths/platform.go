package paths

import "strings"

var unixLike = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true,
	"freebsd": true, "hurd": true, "illumos": true, "ios": true,
	"linux": true, "netbsd": true, "openbsd": true, "solaris": true,
}

// Family returns the platform family of goos: "unix", "windows" or "".
func Family(goos string) string {
	switch {
	case goos == "windows":
		return "windows"
	case unixLike[goos]:
		return "unix"
	default:
		return ""
	}
}

// suffixAliases maps alternate group suffixes onto GOOS names.
var suffixAliases = map[string]string{
	"macos": "darwin",
}

// IsPlatformApplicable reports whether group should be deployed on the layout's platform.
func (l *Layout) IsPlatformApplicable(group string) bool {
	i := strings.LastIndex(group, "_")
	if i < 0 {
		return true
	}
	suffix := group[i+1:]
	if alias, ok := suffixAliases[suffix]; ok {
		suffix = alias
	}
	goos := l.goos()
	if suffix == goos {
		return true
	}
	family := Family(goos)
	return family != "" && suffix == family
}

// IsVariantOf reports whether group is base with a single platform suffix,
// as in shell_linux for shell.
func IsVariantOf(base, group string) bool {
	if !strings.HasPrefix(group, base+"_") {
		return false
	}
	suffix := group[len(base)+1:]
	return suffix != "" && !strings.Contains(suffix, "_")
}
