package normalizer

import (
	"embed"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// _embedDummy sử dụng để tránh lỗi linter về import embed không sử dụng
var _embedDummy = embed.FS{}

// rulesConfig chứa danh sách stop phrase load từ YAML
type rulesConfig struct {
	StopPhrases []string `yaml:"stop_phrases"`
}

var (
	rulesOnce      sync.Once
	sortedPhrases  []string
	stopWordLookup map[string]struct{}
)

func loadRules() {
	var cfg rulesConfig
	if err := yaml.Unmarshal(rulesYAML, &cfg); err != nil {
		panic("normalizer: invalid embedded rules.yaml: " + err.Error())
	}

	sortedPhrases = append(sortedPhrases, cfg.StopPhrases...)
	// phrase dài matching trước, tránh "thi tran" bị cắt dở thành "tran"
	sort.SliceStable(sortedPhrases, func(i, j int) bool {
		return len(sortedPhrases[i]) > len(sortedPhrases[j])
	})

	stopWordLookup = make(map[string]struct{}, len(cfg.StopPhrases))
	for _, p := range cfg.StopPhrases {
		stopWordLookup[p] = struct{}{}
	}
}

func stopPhrases() []string {
	rulesOnce.Do(loadRules)
	return sortedPhrases
}

func stopWordSet() map[string]struct{} {
	rulesOnce.Do(loadRules)
	return stopWordLookup
}
