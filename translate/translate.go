// Package translate formats user visible messages for the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	once    sync.Once
	lock    sync.RWMutex
	printer *message.Printer
)

// hostPrinter builds a printer from the locales reported by the host.
func hostPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("mipsim: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

func current() *message.Printer {
	once.Do(func() {
		p := hostPrinter()
		lock.Lock()
		if printer == nil {
			printer = p
		}
		lock.Unlock()
	})

	lock.RLock()
	defer lock.RUnlock()
	return printer
}

// SetLanguage overrides the host locale, e.g. to pin test output.
func SetLanguage(tag language.Tag) {
	once.Do(func() {})

	lock.Lock()
	printer = message.NewPrinter(tag)
	lock.Unlock()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
