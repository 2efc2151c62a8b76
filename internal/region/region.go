// Package region holds the static allow-list of speech-service regions.
// A credential's region is checked against this list on create and on any
// region change, never on read.
package region

// valid is the set of regions the speech service operates in. Keep sorted
// by geography to match the provider's published endpoint list.
var valid = map[string]struct{}{
	"eastus":             {},
	"eastus2":            {},
	"westus":             {},
	"westus2":            {},
	"westus3":            {},
	"centralus":          {},
	"northcentralus":     {},
	"southcentralus":     {},
	"westcentralus":      {},
	"canadacentral":      {},
	"brazilsouth":        {},
	"northeurope":        {},
	"westeurope":         {},
	"uksouth":            {},
	"francecentral":      {},
	"germanywestcentral": {},
	"norwayeast":         {},
	"swedencentral":      {},
	"switzerlandnorth":   {},
	"switzerlandwest":    {},
	"uaenorth":           {},
	"southafricanorth":   {},
	"centralindia":       {},
	"jioindiawest":       {},
	"eastasia":           {},
	"southeastasia":      {},
	"japaneast":          {},
	"japanwest":          {},
	"koreacentral":       {},
	"australiaeast":      {},
	"qatarcentral":       {},
}

// Valid reports whether r is an allowed speech-service region.
func Valid(r string) bool {
	_, ok := valid[r]
	return ok
}
