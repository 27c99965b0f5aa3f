package normalization

import "unicode/utf8"

// fastPath упрощенная обработка чисто ASCII входа: токенизация,
// классификация, словарные уменьшительные формы и сегментация без
// морфологии, рода и внешних подсказок. Результат эквивалентен
// полному конвейеру на подавляющем большинстве английских входов;
// расхождения измеряются офлайн теневым сравнением.
func (n *Normalizer) fastPath(text, lang string, confidence float64, opts Options) *Result {
	tokens := n.tokenizer.Tokenize(text, lang, TokenizerOptions{
		RemoveStopWords:    opts.RemoveStopWords,
		PreserveSeparators: true,
	})
	if !hasWordTokens(tokens) {
		return failResult(errNoLetters())
	}

	tagged := n.classifier.Classify(tokens, lang, nil)

	trace := []TraceEntry{{Input: text, Rule: "ascii_fastpath"}}
	trace = append(trace, classificationTrace(tagged)...)

	if opts.EnableDiminutives && !opts.PreserveNames {
		trace = append(trace, n.diminutives.Resolve(tagged, lang, opts.AllowCrossLangDiminutives)...)
	}

	segs := n.segmenter.Segment(tagged, lang)
	for i := range segs.Persons {
		n.gender.Infer(&segs.Persons[i], lang)
	}

	return n.buildResult(tagged, segs, lang, confidence, trace)
}

// isASCIIText проверяет, что вход целиком в ASCII
func isASCIIText(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
