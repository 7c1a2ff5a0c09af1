package summarize

// ModelCandidate は試行対象のモデル1つ
type ModelCandidate struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// BuildCandidates は候補モデルリストを構築する
// 希望モデルを先頭に、フォールバックロスターを後続に並べる
// 重複は最初に出現した位置の優先度を保ったまま除去される
func BuildCandidates(provider, requested string, roster []string) []ModelCandidate {
	seen := make(map[string]bool)
	var candidates []ModelCandidate

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		candidates = append(candidates, ModelCandidate{
			Provider: provider,
			Name:     name,
			Priority: len(candidates),
		})
	}

	add(requested)
	for _, name := range roster {
		add(name)
	}

	return candidates
}
