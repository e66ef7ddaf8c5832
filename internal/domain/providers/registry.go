package providers

import (
	"fmt"
	"sync"

	"echominds-server-go/internal/platform/config"
	"echominds-server-go/internal/platform/logging"
)

// Factory functions build configured provider instances. Adapters register
// themselves from init so bootstrap can resolve them by configured name.
type (
	TranscriberFactory func(cfg *config.Config, logger *logging.Logger) (Transcriber, error)
	ClonerFactory      func(cfg *config.Config, logger *logging.Logger) (Cloner, error)
	TranslatorFactory  func(cfg *config.Config, logger *logging.Logger) (Translator, error)
	SynthesizerFactory func(cfg *config.Config, logger *logging.Logger) (Synthesizer, error)
)

var (
	mu                   sync.RWMutex
	transcriberFactories = map[string]TranscriberFactory{}
	clonerFactories      = map[string]ClonerFactory{}
	translatorFactories  = map[string]TranslatorFactory{}
	synthesizerFactories = map[string]SynthesizerFactory{}
)

func RegisterTranscriber(name string, factory TranscriberFactory) {
	mu.Lock()
	defer mu.Unlock()
	transcriberFactories[name] = factory
}

func RegisterCloner(name string, factory ClonerFactory) {
	mu.Lock()
	defer mu.Unlock()
	clonerFactories[name] = factory
}

func RegisterTranslator(name string, factory TranslatorFactory) {
	mu.Lock()
	defer mu.Unlock()
	translatorFactories[name] = factory
}

func RegisterSynthesizer(name string, factory SynthesizerFactory) {
	mu.Lock()
	defer mu.Unlock()
	synthesizerFactories[name] = factory
}

func CreateTranscriber(name string, cfg *config.Config, logger *logging.Logger) (Transcriber, error) {
	mu.RLock()
	factory, ok := transcriberFactories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transcriber provider %q", name)
	}
	return factory(cfg, logger)
}

func CreateCloner(name string, cfg *config.Config, logger *logging.Logger) (Cloner, error) {
	mu.RLock()
	factory, ok := clonerFactories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown cloner provider %q", name)
	}
	return factory(cfg, logger)
}

func CreateTranslator(name string, cfg *config.Config, logger *logging.Logger) (Translator, error) {
	mu.RLock()
	factory, ok := translatorFactories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown translator provider %q", name)
	}
	return factory(cfg, logger)
}

func CreateSynthesizer(name string, cfg *config.Config, logger *logging.Logger) (Synthesizer, error) {
	mu.RLock()
	factory, ok := synthesizerFactories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown synthesizer provider %q", name)
	}
	return factory(cfg, logger)
}
