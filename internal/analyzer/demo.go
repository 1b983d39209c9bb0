package analyzer

import "fmt"

// demoAnalysis returns the placeholder analysis used when no API key is
// configured. The text is deterministic for a given input size and
// language.
func demoAnalysis(charCount int, language string) string {
	return fmt.Sprintf(`GREENLOGISTICS AI - DEMO

Documento analizado: %d caracteres
Idioma: %s

Este es el modo demostración. Para análisis con IA real:
1. Configure ANTHROPIC_API_KEY en el entorno
2. Reinicie el servicio
3. Podrá analizar documentos con Claude AI

Backend funcionando correctamente.`, charCount, language)
}
