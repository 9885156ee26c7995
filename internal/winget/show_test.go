package winget

import "testing"

const mockShowOutput = `Found 7-Zip [7zip.7zip]
Version: 23.01
Publisher: Igor Pavlov
Publisher Url: https://www.7-zip.org
Description: 7-Zip is a file archiver with a high compression ratio.
Homepage: https://www.7-zip.org
License: GNU LGPL
Installer:
  Installer Type: exe
  Installer Url: https://www.7-zip.org/a/7z2301-x64.exe
`

func TestParseShow(t *testing.T) {
	info := ParseShow(mockShowOutput)

	if info.Version != "23.01" {
		t.Errorf("Version = %q, want 23.01", info.Version)
	}
	if info.Publisher != "Igor Pavlov" {
		t.Errorf("Publisher = %q, want Igor Pavlov", info.Publisher)
	}
	if info.Homepage != "https://www.7-zip.org" {
		t.Errorf("Homepage = %q", info.Homepage)
	}
	if info.License != "GNU LGPL" {
		t.Errorf("License = %q", info.License)
	}
	if info.Description == "" {
		t.Error("Description empty")
	}
}

func TestParseShowNotAvailable(t *testing.T) {
	info := ParseShow("Version: N/A\nHomepage: N/A\n")
	if info.Version != "" || info.Homepage != "" {
		t.Errorf("N/A values should be absent, got %+v", info)
	}
}

func TestParseShowEmpty(t *testing.T) {
	if info := ParseShow(""); info != (PackageInfo{}) {
		t.Errorf("empty input produced %+v", info)
	}
}
