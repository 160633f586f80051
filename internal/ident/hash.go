package ident

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Digest domains keep the section digests and the final identifier in
// separate hash namespaces. A settings text can never collide with an options
// text that happens to share bytes.
const (
	domainSettings = "pkgid/settings/v1"
	domainOptions  = "pkgid/options/v1"
	domainRequires = "pkgid/requires/v1"
	domainPackage  = "pkgid/package/v1"
)

// hashWithDomain digests NFC-normalized data under a domain label. The label
// and a zero byte prefix the payload.
func hashWithDomain(domain, data string) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0})
	h.Write([]byte(norm.NFC.String(data)))
	return hex.EncodeToString(h.Sum(nil))
}

// SettingsDigest digests the collapsed settings lines, key=None lines
// included.
func (pi *PackageInfo) SettingsDigest() string {
	return hashWithDomain(domainSettings, pi.settings.Dumps())
}

// OptionsDigest digests the collapsed option lines.
func (pi *PackageInfo) OptionsDigest() string {
	return hashWithDomain(domainOptions, pi.options.Dumps())
}

// RequiresDigest digests the collapsed requirement contributions as rendered.
func (pi *PackageInfo) RequiresDigest() string {
	return hashWithDomain(domainRequires, pi.requires.Dumps())
}

// PackageID computes the binary identity from the three section digests.
// Equal collapsed sections always produce the equal ID; the full view, the
// recipe hash and the environment never contribute.
func (pi *PackageInfo) PackageID() string {
	payload := pi.SettingsDigest() + "\n" + pi.OptionsDigest() + "\n" + pi.RequiresDigest()
	return hashWithDomain(domainPackage, payload)
}
