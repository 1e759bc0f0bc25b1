package airports

// builtin is the airport list shipped with the binary. Region is used for
// aggregate statistics only and never shown per point.
var builtin = []Airport{
	// Mainland China
	{"HGH", 120.4333, 30.2295, "Hangzhou Xiaoshan", RegionEastAsia},
	{"PVG", 121.8052, 31.1443, "Shanghai Pudong", RegionEastAsia},
	{"SHA", 121.3361, 31.1981, "Shanghai Hongqiao", RegionEastAsia},
	{"PEK", 116.5975, 40.0801, "Beijing Capital", RegionEastAsia},
	{"CAN", 113.2988, 23.3924, "Guangzhou Baiyun", RegionEastAsia},
	{"SZX", 113.8107, 22.6393, "Shenzhen Bao'an", RegionEastAsia},
	{"TAO", 120.3744, 36.2661, "Qingdao Liuting", RegionEastAsia},
	{"WNZ", 120.8530, 27.9122, "Wenzhou Longwan", RegionEastAsia},

	// Hong Kong, Macau, Taiwan
	{"HKG", 113.9185, 22.3080, "Hong Kong Intl", RegionEastAsia},
	{"MFM", 113.5925, 22.1496, "Macau Intl", RegionEastAsia},
	{"TPE", 121.2325, 25.0777, "Taipei Taoyuan", RegionEastAsia},

	// Southeast Asia
	{"SIN", 103.9894, 1.3644, "Singapore Changi", RegionSoutheastAsia},
	{"KUL", 101.7098, 2.7456, "Kuala Lumpur Intl", RegionSoutheastAsia},
	{"BKK", 100.7501, 13.6811, "Bangkok Suvarnabhumi", RegionSoutheastAsia},
	{"BWN", 114.9283, 4.9442, "Bandar Seri Begawan", RegionSoutheastAsia},

	// Japan, Korea
	{"NRT", 140.3929, 35.7668, "Tokyo Narita", RegionEastAsia},
	{"HND", 139.7814, 35.5494, "Tokyo Haneda", RegionEastAsia},
	{"KIX", 135.2380, 34.4272, "Osaka Kansai", RegionEastAsia},
	{"ICN", 126.4505, 37.4602, "Seoul Incheon", RegionEastAsia},

	// Central Asia
	{"ALA", 76.8844, 43.3521, "Almaty", RegionCentralAsia},
	{"NQZ", 71.4669, 51.0222, "Nur-Sultan (Astana)", RegionCentralAsia},

	// Australia
	{"SYD", 151.1772, -33.9461, "Sydney Kingsford Smith", RegionOceania},
	{"BNE", 153.1094, -27.3842, "Brisbane", RegionOceania},

	// Europe
	{"FRA", 8.5706, 50.0333, "Frankfurt Main", RegionEurope},
	{"TXL", 13.2877, 52.5597, "Berlin Tegel", RegionEurope},
	{"LHR", -0.4543, 51.4700, "London Heathrow", RegionEurope},

	// North America, west
	{"SFO", -122.375, 37.6189, "San Francisco Intl", RegionNorthAmerica},
	{"OAK", -122.221, 37.7126, "Oakland Intl", RegionNorthAmerica},
	{"SJC", -121.929, 37.3627, "San Jose Mineta", RegionNorthAmerica},
	{"LAX", -118.408, 33.9416, "Los Angeles Intl", RegionNorthAmerica},
	{"SAN", -117.190, 32.7336, "San Diego Intl", RegionNorthAmerica},
	{"SEA", -122.309, 47.4502, "Seattle-Tacoma", RegionNorthAmerica},
	{"PDX", -122.598, 45.5898, "Portland Intl", RegionNorthAmerica},
	{"BOI", -116.223, 43.5644, "Boise Airport", RegionNorthAmerica},
	{"LAS", -115.152, 36.0833, "Las Vegas Harry Reid", RegionNorthAmerica},

	// North America, south and central
	{"AUS", -97.670, 30.1945, "Austin-Bergstrom", RegionNorthAmerica},
	{"DFW", -97.040, 32.8998, "Dallas Fort Worth", RegionNorthAmerica},
	{"IAH", -95.341, 29.9844, "Houston George Bush", RegionNorthAmerica},
	{"JAN", -90.076, 32.3112, "Jackson-Medgar Wiley Evers", RegionNorthAmerica},
	{"ABQ", -106.609, 35.0496, "Albuquerque Sunport", RegionNorthAmerica},
	{"MIA", -80.291, 25.7959, "Miami Intl", RegionNorthAmerica},
	{"ATL", -84.428, 33.6407, "Atlanta Hartsfield-Jackson", RegionNorthAmerica},
	{"GSP", -82.221, 34.8954, "Greenville-Spartanburg", RegionNorthAmerica},
	{"CHS", -80.040, 32.8986, "Charleston Intl", RegionNorthAmerica},
	{"CLT", -80.943, 35.2140, "Charlotte Douglas", RegionNorthAmerica},
	{"BNA", -86.678, 36.1245, "Nashville Intl", RegionNorthAmerica},

	// North America, east
	{"BOS", -71.005, 42.3656, "Boston Logan", RegionNorthAmerica},
	{"JFK", -73.778, 40.6413, "New York JFK", RegionNorthAmerica},
	{"EWR", -74.175, 40.6895, "Newark Liberty", RegionNorthAmerica},
	{"RDU", -78.788, 35.8776, "Raleigh-Durham", RegionNorthAmerica},
	{"MSN", -89.338, 43.1399, "Madison Dane County", RegionNorthAmerica},
	{"MKE", -87.897, 42.9481, "Milwaukee Mitchell", RegionNorthAmerica},
	{"STL", -90.370, 38.7487, "St. Louis Lambert", RegionNorthAmerica},
	{"MSP", -93.222, 44.8848, "Minneapolis-Saint Paul", RegionNorthAmerica},

	// Canada
	{"YVR", -123.183, 49.1951, "Vancouver Intl", RegionNorthAmerica},
	{"YYZ", -79.631, 43.6777, "Toronto Pearson", RegionNorthAmerica},
}
