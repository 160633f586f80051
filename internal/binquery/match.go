package binquery

import "github.com/roach88/pkgid/internal/ident"

// Match evaluates a query against a fingerprint in memory, over the full
// settings and full options. A key present in the settings resolves there;
// anything else resolves as an option name, where package-qualified keys
// reach into dependency groups. Absent and undefined keys both render "None",
// so `compiler.toolset=None` matches a fingerprint that never set one.
func Match(e Expr, info *ident.PackageInfo) bool {
	switch node := e.(type) {
	case Compare:
		matched := lookup(info, node.Key) == node.Value
		if node.Op == OpNotEqual {
			return !matched
		}
		return matched
	case And:
		for _, term := range node.Terms {
			if !Match(term, info) {
				return false
			}
		}
		return true
	case Or:
		for _, term := range node.Terms {
			if Match(term, info) {
				return true
			}
		}
		return false
	case Not:
		return !Match(node.Expr, info)
	}
	return false
}

func lookup(info *ident.PackageInfo, key string) string {
	if _, ok := info.FullSettings().Get(key); ok {
		return info.FullSettings().GetText(key)
	}
	return info.FullOptions().GetText(key)
}
