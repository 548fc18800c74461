// README: Supported destination cities and their Korean display names.
package types

// City identifies a supported travel destination.
type City string

const (
	CitySeoul     City = "SEOUL"
	CityBusan     City = "BUSAN"
	CityIncheon   City = "INCHEON"
	CityDaegu     City = "DAEGU"
	CityDaejeon   City = "DAEJEON"
	CityGwangju   City = "GWANGJU"
	CityGyeongju  City = "GYEONGJU"
	CityJeonju    City = "JEONJU"
	CityGangneung City = "GANGNEUNG"
	CitySokcho    City = "SOKCHO"
	CityYeosu     City = "YEOSU"
	CityJeju      City = "JEJU"
)

// Cities lists every supported city in declaration order. Reverse geocoding
// scans this slice in order and the first display-name substring match wins,
// so the order is part of the resolution contract.
var Cities = []City{
	CitySeoul,
	CityBusan,
	CityIncheon,
	CityDaegu,
	CityDaejeon,
	CityGwangju,
	CityGyeongju,
	CityJeonju,
	CityGangneung,
	CitySokcho,
	CityYeosu,
	CityJeju,
}

var cityNames = map[City]string{
	CitySeoul:     "서울",
	CityBusan:     "부산",
	CityIncheon:   "인천",
	CityDaegu:     "대구",
	CityDaejeon:   "대전",
	CityGwangju:   "광주",
	CityGyeongju:  "경주",
	CityJeonju:    "전주",
	CityGangneung: "강릉",
	CitySokcho:    "속초",
	CityYeosu:     "여수",
	CityJeju:      "제주",
}

// DisplayName returns the Korean display name used for prompts, titles and
// region matching. Unknown cities fall back to the raw identifier.
func (c City) DisplayName() string {
	if n, ok := cityNames[c]; ok {
		return n
	}
	return string(c)
}

// ParseCity maps an identifier or display name to a City.
func ParseCity(s string) (City, bool) {
	for _, c := range Cities {
		if string(c) == s || c.DisplayName() == s {
			return c, true
		}
	}
	return "", false
}
