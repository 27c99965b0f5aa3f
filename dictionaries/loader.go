package dictionaries

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Имена файлов словарей. Каждый файл необязателен: отсутствующие
// разделы остаются со встроенными значениями по умолчанию.
const (
	fileGivenNames  = "given_names.yaml"
	fileDiminutives = "diminutives.yaml"
	fileStopWords   = "stop_words.yaml"
	fileLegalForms  = "legal_forms.yaml"
	fileParticles   = "particles.yaml"
	fileTitles      = "titles.yaml"
)

// givenNamesFile формат given_names.yaml: язык -> список имен
type givenNamesFile map[string][]struct {
	Name   string `yaml:"name"`
	Gender string `yaml:"gender"`
}

// diminutivesFile формат diminutives.yaml: язык -> форма -> каноническое имя
type diminutivesFile map[string]map[string]string

// wordListFile формат stop_words.yaml и particles.yaml: язык -> список слов.
// Для стоп-слов ключ "<язык>_letters" задает однобуквенные исключения.
type wordListFile map[string][]string

// legalFormsFile формат legal_forms.yaml: алиас -> каноническая ОПФ
type legalFormsFile map[string]string

// titlesFile формат titles.yaml: язык -> титул -> род (male/female)
type titlesFile map[string]map[string]string

// LoadDir создает хранилище: встроенные словари, поверх которых
// накладываются YAML-файлы из каталога dir.
func LoadDir(dir string) (*Store, error) {
	s := NewDefaultStore()
	if dir == "" {
		return s, nil
	}

	logger := slog.Default().With("component", "dictionaries")

	if err := loadYAML(dir, fileGivenNames, func(f givenNamesFile) {
		for lang, names := range f {
			for _, n := range names {
				s.addGivenName(lang, n.Name, parseGender(n.Gender))
			}
		}
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, fileDiminutives, func(f diminutivesFile) {
		for lang, pairs := range f {
			for nick, canonical := range pairs {
				s.addDiminutive(lang, nick, canonical)
			}
		}
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, fileStopWords, func(f wordListFile) {
		for lang, words := range f {
			if letters, found := cutSuffixKey(lang, "_letters"); found {
				s.addLetterWords(letters, words...)
				continue
			}
			s.addStopWords(lang, words...)
		}
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, fileParticles, func(f wordListFile) {
		for lang, words := range f {
			s.addParticles(lang, words...)
		}
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, fileLegalForms, func(f legalFormsFile) {
		for alias, canonical := range f {
			s.addLegalForm(alias, canonical)
		}
	}); err != nil {
		return nil, err
	}

	if err := loadYAML(dir, fileTitles, func(f titlesFile) {
		for lang, titles := range f {
			for title, gender := range titles {
				s.addTitle(lang, title, parseGender(gender))
			}
		}
	}); err != nil {
		return nil, err
	}

	logger.Info("Dictionaries loaded", "dir", dir, "languages", s.Languages())
	return s, nil
}

// loadYAML читает один словарный файл; отсутствие файла не является ошибкой.
func loadYAML[T any](dir, name string, apply func(T)) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read dictionary %s: %w", name, err)
	}

	var parsed T
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse dictionary %s: %w", name, err)
	}

	apply(parsed)
	return nil
}

func parseGender(value string) NameGender {
	switch FoldKey(value) {
	case "male", "m", "masculine":
		return GenderMale
	case "female", "f", "feminine":
		return GenderFemale
	}
	return GenderUnisex
}

// cutSuffixKey выделяет язык из ключа вида "ru_letters".
func cutSuffixKey(key, suffix string) (string, bool) {
	if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
		return key[:len(key)-len(suffix)], true
	}
	return "", false
}
