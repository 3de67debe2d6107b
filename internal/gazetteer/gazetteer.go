package gazetteer

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/branch-locator/internal/normalizer"
)

//go:embed data/gazetteer.yaml
var gazetteerYAML []byte

// _embedDummy sử dụng để tránh lỗi linter về import embed không sử dụng
var _embedDummy = embed.FS{}

// DistrictDetail dữ liệu một quận/huyện: cung đường, bệnh viện, TTTM,
// địa danh và danh sách quận huyện lân cận dùng cho chấm điểm proximity.
type DistrictDetail struct {
	Streets         []string `yaml:"streets"`
	Hospitals       []string `yaml:"hospitals"`
	Malls           []string `yaml:"malls"`
	Landmarks       []string `yaml:"landmarks"`
	NearbyDistricts []string `yaml:"nearby_districts"`
}

// Keywords gộp toàn bộ street/hospital/mall/landmark của quận thành một
// danh sách dùng cho suy luận tỉnh và chấm điểm.
func (d DistrictDetail) Keywords() []string {
	out := make([]string, 0, len(d.Streets)+len(d.Hospitals)+len(d.Malls)+len(d.Landmarks))
	out = append(out, d.Streets...)
	out = append(out, d.Hospitals...)
	out = append(out, d.Malls...)
	out = append(out, d.Landmarks...)
	return out
}

// ProvinceData map tên quận/huyện -> chi tiết
type ProvinceData map[string]DistrictDetail

// Gazetteer dữ liệu hành chính tĩnh, immutable sau khi load.
type Gazetteer struct {
	version   string
	provinces map[string]ProvinceData

	// tên tỉnh sort sẵn cho output ổn định
	provinceNames []string
}

type gazetteerFile struct {
	Version   string                               `yaml:"version"`
	Provinces map[string]map[string]DistrictDetail `yaml:"provinces"`
}

// Load parse dữ liệu embedded, chuẩn hóa toàn bộ tên và validate các
// invariant cơ bản. Gọi một lần lúc khởi động; lỗi ở đây là fatal.
func Load() (*Gazetteer, error) {
	var file gazetteerFile
	if err := yaml.Unmarshal(gazetteerYAML, &file); err != nil {
		return nil, fmt.Errorf("gazetteer: parse embedded data: %w", err)
	}
	if len(file.Provinces) == 0 {
		return nil, fmt.Errorf("gazetteer: embedded data has no provinces")
	}

	g := &Gazetteer{
		version:   file.Version,
		provinces: make(map[string]ProvinceData, len(file.Provinces)),
	}

	seenDistricts := make(map[string]string)
	for rawProv, dists := range file.Provinces {
		prov := normalizer.Normalize(rawProv)
		if prov == "" {
			return nil, fmt.Errorf("gazetteer: province %q normalizes to empty", rawProv)
		}
		if _, dup := g.provinces[prov]; dup {
			return nil, fmt.Errorf("gazetteer: duplicate province %q", prov)
		}

		pd := make(ProvinceData, len(dists))
		for rawDist, detail := range dists {
			dist := normalizer.Normalize(rawDist)
			if dist == "" {
				return nil, fmt.Errorf("gazetteer: district %q in %q normalizes to empty", rawDist, prov)
			}
			if _, dup := pd[dist]; dup {
				return nil, fmt.Errorf("gazetteer: duplicate district %q in %q", dist, prov)
			}
			if owner, dup := seenDistricts[dist]; dup && owner != prov {
				return nil, fmt.Errorf("gazetteer: district %q listed in both %q and %q", dist, owner, prov)
			}
			seenDistricts[dist] = prov

			pd[dist] = DistrictDetail{
				Streets:         normalizeAll(detail.Streets),
				Hospitals:       normalizeAll(detail.Hospitals),
				Malls:           normalizeAll(detail.Malls),
				Landmarks:       normalizeAll(detail.Landmarks),
				NearbyDistricts: normalizeAll(detail.NearbyDistricts),
			}
		}
		g.provinces[prov] = pd
	}

	g.provinceNames = make([]string, 0, len(g.provinces))
	for name := range g.provinces {
		g.provinceNames = append(g.provinceNames, name)
	}
	sort.Strings(g.provinceNames)

	return g, nil
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := normalizer.Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Version phiên bản dataset, dùng làm thành phần cache key.
func (g *Gazetteer) Version() string { return g.version }

// ProvinceNames danh sách tên tỉnh đã chuẩn hóa, sort sẵn.
func (g *Gazetteer) ProvinceNames() []string { return g.provinceNames }

// Province trả về dữ liệu quận/huyện của một tỉnh (tên đã chuẩn hóa).
func (g *Gazetteer) Province(name string) (ProvinceData, bool) {
	pd, ok := g.provinces[name]
	return pd, ok
}

// HasProvince kiểm tra tỉnh có trong dataset không.
func (g *Gazetteer) HasProvince(name string) bool {
	_, ok := g.provinces[name]
	return ok
}

// DistrictCount tổng số quận/huyện trong dataset.
func (g *Gazetteer) DistrictCount() int {
	n := 0
	for _, pd := range g.provinces {
		n += len(pd)
	}
	return n
}
