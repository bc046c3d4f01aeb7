package locality

import "github.com/couchcryptid/delivery-area-service/internal/domain"

// Locality is a named place and the coordinate it resolves to.
type Locality struct {
	Name   string
	Center domain.Coordinate
}

// Gazetteer is the lookup table behind Geocoder. Localities are searched in
// slice order, so put more specific names ahead of names they contain
// (e.g. "Hampton Wick" before "Hampton"). Names match whole words only, so
// "Hampton" does not match "Southampton". Areas is keyed by postcode area.
type Gazetteer struct {
	Localities []Locality
	Areas      map[string]domain.Coordinate
}

// DefaultGazetteer covers south-west London and a few places beyond the default
// service radius.
func DefaultGazetteer() Gazetteer {
	return Gazetteer{
		Localities: []Locality{
			{Name: "Kingston", Center: domain.Coordinate{Lat: 51.4123, Lon: -0.3007}},
			{Name: "Norbiton", Center: domain.Coordinate{Lat: 51.4120, Lon: -0.2840}},
			{Name: "New Malden", Center: domain.Coordinate{Lat: 51.4009, Lon: -0.2564}},
			{Name: "Surbiton", Center: domain.Coordinate{Lat: 51.3937, Lon: -0.3033}},
			{Name: "Tolworth", Center: domain.Coordinate{Lat: 51.3790, Lon: -0.2817}},
			{Name: "Chessington", Center: domain.Coordinate{Lat: 51.3617, Lon: -0.3054}},
			{Name: "Worcester Park", Center: domain.Coordinate{Lat: 51.3797, Lon: -0.2446}},
			{Name: "Wimbledon", Center: domain.Coordinate{Lat: 51.4214, Lon: -0.2064}},
			{Name: "Raynes Park", Center: domain.Coordinate{Lat: 51.4090, Lon: -0.2300}},
			{Name: "Putney", Center: domain.Coordinate{Lat: 51.4613, Lon: -0.2166}},
			{Name: "Richmond", Center: domain.Coordinate{Lat: 51.4613, Lon: -0.3037}},
			{Name: "Twickenham", Center: domain.Coordinate{Lat: 51.4462, Lon: -0.3355}},
			{Name: "Teddington", Center: domain.Coordinate{Lat: 51.4275, Lon: -0.3322}},
			{Name: "Hampton Wick", Center: domain.Coordinate{Lat: 51.4140, Lon: -0.3123}},
			{Name: "Hampton", Center: domain.Coordinate{Lat: 51.4134, Lon: -0.3694}},
			{Name: "East Molesey", Center: domain.Coordinate{Lat: 51.3988, Lon: -0.3490}},
			{Name: "Esher", Center: domain.Coordinate{Lat: 51.3697, Lon: -0.3653}},
			{Name: "Epsom", Center: domain.Coordinate{Lat: 51.3360, Lon: -0.2670}},
			{Name: "Morden", Center: domain.Coordinate{Lat: 51.4015, Lon: -0.1949}},
			{Name: "Mitcham", Center: domain.Coordinate{Lat: 51.4034, Lon: -0.1680}},
			{Name: "Sutton", Center: domain.Coordinate{Lat: 51.3618, Lon: -0.1945}},
			{Name: "Croydon", Center: domain.Coordinate{Lat: 51.3762, Lon: -0.0982}},
			{Name: "Camden", Center: domain.Coordinate{Lat: 51.5390, Lon: -0.1426}},
			{Name: "Guildford", Center: domain.Coordinate{Lat: 51.2362, Lon: -0.5704}},
			{Name: "Reading", Center: domain.Coordinate{Lat: 51.4543, Lon: -0.9781}},
		},
		Areas: map[string]domain.Coordinate{
			"KT1":  {Lat: 51.4095, Lon: -0.3007},
			"KT2":  {Lat: 51.4180, Lon: -0.2880},
			"KT3":  {Lat: 51.4002, Lon: -0.2560},
			"KT4":  {Lat: 51.3790, Lon: -0.2430},
			"KT5":  {Lat: 51.3900, Lon: -0.2860},
			"KT6":  {Lat: 51.3830, Lon: -0.3040},
			"KT7":  {Lat: 51.3880, Lon: -0.3300},
			"KT8":  {Lat: 51.3990, Lon: -0.3560},
			"KT9":  {Lat: 51.3610, Lon: -0.3020},
			"KT10": {Lat: 51.3690, Lon: -0.3640},
			"SW15": {Lat: 51.4580, Lon: -0.2240},
			"SW19": {Lat: 51.4214, Lon: -0.2064},
			"SW20": {Lat: 51.4100, Lon: -0.2300},
			"TW1":  {Lat: 51.4480, Lon: -0.3270},
			"TW2":  {Lat: 51.4430, Lon: -0.3530},
			"TW9":  {Lat: 51.4650, Lon: -0.2960},
			"TW10": {Lat: 51.4500, Lon: -0.2980},
			"TW11": {Lat: 51.4270, Lon: -0.3330},
			"TW12": {Lat: 51.4200, Lon: -0.3670},
			"SM1":  {Lat: 51.3650, Lon: -0.1920},
			"SM2":  {Lat: 51.3510, Lon: -0.1930},
			"SM3":  {Lat: 51.3700, Lon: -0.2190},
			"SM4":  {Lat: 51.3960, Lon: -0.1980},
			"CR4":  {Lat: 51.4030, Lon: -0.1620},
			"E1":   {Lat: 51.5150, Lon: -0.0720},
			"GU1":  {Lat: 51.2362, Lon: -0.5704},
			"RG1":  {Lat: 51.4543, Lon: -0.9781},
		},
	}
}
