package gazetteer

import (
	"sort"

	"github.com/branch-locator/internal/normalizer"
)

// baseAliases map từ khóa dân gian / viết tắt / vùng hay nhầm lẫn về tên
// tỉnh chuẩn. Các entry ở đây luôn thắng key sinh tự động từ gazetteer.
var baseAliases = map[string]string{
	// Miền Nam
	"sai gon":     "ho chi minh",
	"hcm":         "ho chi minh",
	"tphcm":       "ho chi minh",
	"go vap":      "ho chi minh",
	"binh tan":    "ho chi minh",
	"binh chanh":  "ho chi minh",
	"hoc mon":     "ho chi minh",
	"cu chi":      "ho chi minh",
	"ben thanh":   "ho chi minh",
	"bui vien":    "ho chi minh",
	"phu my hung": "ho chi minh",
	"tan thuan":   "ho chi minh",
	"quan 2":      "ho chi minh",
	"quan 3":      "ho chi minh",
	"quan 4":      "ho chi minh",
	"quan 5":      "ho chi minh",
	"quan 6":      "ho chi minh",
	"quan 9":      "ho chi minh",
	"quan 10":     "ho chi minh",
	"quan 11":     "ho chi minh",
	"quan 12":     "ho chi minh",

	"ben cat":   "binh duong",
	"tan uyen":  "binh duong",
	"bau bang":  "binh duong",
	"lai thieu": "binh duong",

	"long thanh": "dong nai",
	"nhon trach": "dong nai",
	"trang bom":  "dong nai",
	"xuan loc":   "dong nai",
	"amata":      "dong nai",
	"la nga":     "dong nai",

	"vung tau":  "ba ria vung tau",
	"ba ria":    "ba ria vung tau",
	"phu my":    "ba ria vung tau",
	"long hai":  "ba ria vung tau",
	"chau duc":  "ba ria vung tau",
	"xuyen moc": "ba ria vung tau",
	"bai truoc": "ba ria vung tau",
	"bai sau":   "ba ria vung tau",

	"trang bang": "tay ninh",
	"go dau":     "tay ninh",
	"hoa thanh":  "tay ninh",
	"moc bai":    "tay ninh",
	"ben cau":    "tay ninh",

	// Miền Tây
	"cho gao":  "tien giang",
	"go cong":  "tien giang",
	"cai be":   "tien giang",
	"mo cay":   "ben tre",
	"chau doc": "an giang",
	"ha tien":  "kien giang",
	"phu quoc": "kien giang",
	"nam can":  "ca mau",
	"bac lieu": "ca mau",
	"nga bay":  "hau giang",
	"o mon":    "can tho",

	// Miền Trung & Tây Nguyên
	"hue":         "thua thien hue",
	"vi da":       "thua thien hue",
	"kim long":    "thua thien hue",
	"hoi an":      "quang nam",
	"dien ban":    "quang nam",
	"an nhon":     "binh dinh",
	"dien khanh":  "khanh hoa",
	"thap cham":   "ninh thuan",
	"mui ne":      "binh thuan",
	"lagi":        "binh thuan",
	"quang binh":  "quang tri",
	"dong hoi":    "quang tri",
	"cua lo":      "nghe an",
	"sam son":     "thanh hoa",
	"bmt":         "dak lak",
	"dak nong":    "dak lak",
	"duc trong":   "lam dong",
	"lam ha":      "lam dong",

	// Miền Bắc
	"son tay":   "ha noi",
	"do son":    "hai phong",
	"hai an":    "hai phong",
	"bai chay":  "quang ninh",
	"hon gai":   "quang ninh",
	"cam pha":   "quang ninh",
	"mong cai":  "quang ninh",
	"ecopark":   "hung yen",
	"yen phong": "bac ninh",
	"bac giang": "bac ninh",
	"tam dao":   "vinh phuc",
	"phu tho":   "vinh phuc",
	"song cong": "thai nguyen",
	"tam diep":  "ninh binh",
	"sapa":      "lao cai",
	"moc chau":  "son la",
	"ha nam":    "nam dinh",
}

// AliasTable map từ khóa (đã chuẩn hóa) về tên tỉnh chuẩn. Build một lần
// từ base map + toàn bộ tên tỉnh/quận trong gazetteer, sau đó read-only.
type AliasTable struct {
	aliases    map[string]string
	sortedKeys []string
}

// BuildAliasTable sinh bảng alias: base map trước, sau đó mọi tên tỉnh và
// tên quận/huyện trong gazetteer trở thành key trỏ về tỉnh của nó (không
// ghi đè entry base). Keys được sort một lần theo độ dài giảm dần để
// lookup luôn ưu tiên key dài nhất (longest match wins).
func BuildAliasTable(g *Gazetteer) *AliasTable {
	aliases := make(map[string]string, len(baseAliases)+g.DistrictCount()+len(g.provinceNames))

	for k, v := range baseAliases {
		key := normalizer.Normalize(k)
		if key == "" {
			continue
		}
		aliases[key] = normalizer.Normalize(v)
	}

	for _, prov := range g.provinceNames {
		if _, exists := aliases[prov]; !exists {
			aliases[prov] = prov
		}
		for dist := range g.provinces[prov] {
			if _, exists := aliases[dist]; !exists {
				aliases[dist] = prov
			}
		}
	}

	keys := make([]string, 0, len(aliases))
	for k := range aliases {
		keys = append(keys, k)
	}
	// dài trước; cùng độ dài thì alphabet để kết quả deterministic
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return &AliasTable{aliases: aliases, sortedKeys: keys}
}

// SortedKeys toàn bộ key theo độ dài giảm dần.
func (t *AliasTable) SortedKeys() []string { return t.sortedKeys }

// Province tra tỉnh chuẩn theo key.
func (t *AliasTable) Province(key string) (string, bool) {
	p, ok := t.aliases[key]
	return p, ok
}

// Len số lượng alias trong bảng.
func (t *AliasTable) Len() int { return len(t.aliases) }
