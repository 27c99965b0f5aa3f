package normalization

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"namenorm/dictionaries"
	"namenorm/entityhints"
	"namenorm/language"
)

// Normalizer конвейер нормализации наименований.
// Этапы строго последовательны: токенизация, классификация ролей,
// разворачивание уменьшительных форм, морфология, повторное
// разворачивание, сегментация, род и сборка. Каждый этап изолирован:
// сбой на токене оставляет токен без изменений и фиксируется
// в трассировке, вход целиком не отклоняется.
type Normalizer struct {
	store       *dictionaries.Store
	tokenizer   *Tokenizer
	classifier  *Classifier
	morphology  *Morphology
	gender      *GenderEngine
	diminutives *DiminutiveResolver
	segmenter   *Segmenter
	hints       entityhints.Provider
	logger      *slog.Logger
}

// NewNormalizer создает конвейер. analyzer и hints опциональны:
// nil отключает соответствующий внешний источник без деградации API.
func NewNormalizer(store *dictionaries.Store, analyzer Analyzer, hints entityhints.Provider) *Normalizer {
	return NewNormalizerWithCacheSize(store, analyzer, hints, DefaultMorphCacheSize)
}

// NewNormalizerWithCacheSize создает конвейер с явным размером кэша морфологии
func NewNormalizerWithCacheSize(store *dictionaries.Store, analyzer Analyzer, hints entityhints.Provider, morphCacheSize int) *Normalizer {
	return &Normalizer{
		store:       store,
		tokenizer:   NewTokenizer(store),
		classifier:  NewClassifier(store),
		morphology:  NewMorphology(store, analyzer, morphCacheSize),
		gender:      NewGenderEngine(store),
		diminutives: NewDiminutiveResolver(store),
		segmenter:   NewSegmenter(store),
		hints:       hints,
		logger:      slog.Default().With("component", "normalizer"),
	}
}

// Normalize нормализует один вход. Детерминированность и
// идемпотентность гарантируются: повторный вызов на своем же
// результате возвращает его без изменений.
func (n *Normalizer) Normalize(ctx context.Context, text string, opts Options) *Result {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return failResult(errEmptyInput())
	}
	if len(trimmed) > MaxInputLength {
		return failResult(errInputTooLong(len(trimmed)))
	}
	if !containsLetter(trimmed) {
		return failResult(errNoLetters())
	}

	lang := language.NormalizeCode(opts.Language)
	confidence := 1.0
	if lang == language.Auto || lang == "" {
		lang, confidence = language.Detect(trimmed)
	}

	if opts.ASCIIFastPath && lang == language.English && isASCIIText(trimmed) {
		return n.fastPath(trimmed, lang, confidence, opts)
	}

	var trace []TraceEntry

	// Подсказки распознавателя сущностей ограничены контекстом вызова;
	// их отсутствие или отказ не меняет исход, только лишает смещения
	var hints *entityhints.Hints
	if n.hints != nil && lang == language.English {
		h, err := n.hints.Extract(ctx, trimmed)
		if err != nil {
			deg := &DegradedProcessing{Component: "entity_hints", Cause: err}
			trace = append(trace, TraceEntry{Input: trimmed, Rule: "degraded", Notes: deg.Error()})
			n.logger.Debug("Entity hints unavailable", "error", err.Error())
		} else {
			hints = h
		}
	}

	tokens := n.tokenizer.Tokenize(trimmed, lang, TokenizerOptions{
		RemoveStopWords:    opts.RemoveStopWords,
		PreserveSeparators: true,
	})
	if !hasWordTokens(tokens) {
		return failResult(errNoLetters())
	}

	tagged := n.classifier.Classify(tokens, lang, hints)
	trace = append(trace, classificationTrace(tagged)...)

	rewriteNames := opts.EnableDiminutives && !opts.PreserveNames
	if rewriteNames {
		trace = append(trace, n.diminutives.Resolve(tagged, lang, opts.AllowCrossLangDiminutives)...)
	}

	if opts.EnableMorphology {
		for i := range tagged {
			n.applyMorphology(&tagged[i], lang, opts, &trace)
		}
	}

	// Уменьшительная форма могла скрываться за падежной
	if rewriteNames {
		trace = append(trace, n.diminutives.Resolve(tagged, lang, opts.AllowCrossLangDiminutives)...)
	}

	segs := n.segmenter.Segment(tagged, lang)

	for i := range segs.Persons {
		n.gender.Infer(&segs.Persons[i], lang)
		if opts.EnableGenderAdjustment && !opts.PreserveNames {
			trace = append(trace, n.gender.AdjustSurname(&segs.Persons[i], lang)...)
		}
	}

	return n.buildResult(tagged, segs, lang, confidence, trace)
}

// applyMorphology нормализует один токен с изоляцией сбоя:
// паника внутри этапа оставляет токен как есть.
func (n *Normalizer) applyMorphology(tt *TaggedToken, lang string, opts Options, trace *[]TraceEntry) {
	defer func() {
		if r := recover(); r != nil {
			fault := &InternalFault{Stage: "morphology", Token: tt.Text, Cause: r}
			*trace = append(*trace, TraceEntry{
				Input:  tt.Text,
				Output: tt.Text,
				Role:   tt.Role,
				Rule:   "internal_fault",
				Notes:  fault.Error(),
			})
			n.logger.Error("Stage panic recovered",
				"stage", "morphology",
				"token", tt.Text)
		}
	}()

	if opts.PreserveNames && tt.Role == RoleGiven {
		return
	}
	normalized, rule := n.morphology.ToNominative(tt.Text, tt.Role, lang)
	if rule == "" || normalized == tt.Text {
		return
	}
	*trace = append(*trace, TraceEntry{
		Input:  tt.Text,
		Output: normalized,
		Role:   tt.Role,
		Rule:   rule,
	})
	tt.Text = normalized
}

// buildResult собирает итог: группы упорядочиваются внутри по
// каноническому порядку ролей, а между собой — по позиции во входе;
// участки соединяются через ", ", что сохраняет разделители и делает
// многосущностный выход идемпотентным.
func (n *Normalizer) buildResult(tagged []TaggedToken, segs Segments, lang string, confidence float64, trace []TraceEntry) *Result {
	type span struct {
		start int
		text  string
	}
	var spans []span

	for i := range segs.Persons {
		start := groupStart(segs.Persons[i].Tokens)
		AssembleOrder(&segs.Persons[i], false)
		if text := segs.Persons[i].Text(); text != "" {
			spans = append(spans, span{start, text})
		}
	}

	organizations := make([]string, 0, len(segs.Organizations))
	for i := range segs.Organizations {
		text := segs.Organizations[i].Text()
		organizations = append(organizations, text)
		spans = append(spans, span{groupStart(segs.Organizations[i].Tokens), text})
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	parts := make([]string, 0, len(spans))
	for _, sp := range spans {
		parts = append(parts, sp.text)
	}
	normalized := strings.Join(parts, ", ")

	// Вход без распознанных сущностей проходит насквозь:
	// остаются все значимые токены в исходном порядке
	if normalized == "" {
		normalized = passthrough(tagged)
	}

	return &Result{
		Normalized:    normalized,
		Tokens:        tagged,
		Persons:       segs.Persons,
		Organizations: organizations,
		Language:      lang,
		Confidence:    confidence,
		Success:       true,
		Trace:         trace,
	}
}

func passthrough(tagged []TaggedToken) string {
	var parts []string
	for _, tt := range tagged {
		switch tt.RuleID {
		case "separator_comma", "separator_conjunction", "stop_word", "legal_form":
			continue
		}
		parts = append(parts, tt.Text)
	}
	return strings.Join(parts, " ")
}

func groupStart(tokens []TaggedToken) int {
	start := -1
	for _, tt := range tokens {
		if start == -1 || tt.Start < start {
			start = tt.Start
		}
	}
	return start
}

func classificationTrace(tagged []TaggedToken) []TraceEntry {
	entries := make([]TraceEntry, 0, len(tagged))
	for _, tt := range tagged {
		entries = append(entries, TraceEntry{
			Input:  tt.Text,
			Output: tt.Text,
			Role:   tt.Role,
			Rule:   tt.RuleID,
		})
	}
	return entries
}

func failResult(err *InputError) *Result {
	return &Result{
		Success: false,
		Errors:  []string{err.Error()},
	}
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasWordTokens(tokens []Token) bool {
	for _, t := range tokens {
		if t.Text != "," {
			return true
		}
	}
	return false
}
