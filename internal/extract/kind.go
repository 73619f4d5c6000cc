// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

// kindDescriptions maps USPTO kind codes to their published meanings.
// Used by the export stage; the record itself keeps the code.
var kindDescriptions = map[string]string{
	"B1": "Utility Patent Grant (no published application) issued on or after January 2, 2001.",
	"B2": "Utility Patent Grant (with a published application) issued on or after January 2, 2001.",
	"S1": "Design Patent",
	"E1": "Reissue Patent",
	"P1": "Plant Patent Application published on or after January 2, 2001",
	"P2": "Plant Patent Grant (no published application) issued on or after January 2, 2001",
	"P3": "Plant Patent Grant (with a published application) issued on or after January 2, 2001",
}

// DescribeKind returns the description for a USPTO kind code. The
// second return is false for codes outside the published set.
func DescribeKind(code string) (string, bool) {
	desc, ok := kindDescriptions[code]
	return desc, ok
}
