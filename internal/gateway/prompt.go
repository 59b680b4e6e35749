package gateway

import "fmt"

// The UI prints the answer as preformatted text, so the prompt asks for
// bold date lines and no markdown headers.
const promptTemplate = `Actúa como un asistente de noticias personal.
Genera un resumen conciso, atractivo y actualizado sobre "%s".
Céntrate en eventos de hoy o de esta semana.

**INSTRUCCIONES CRÍTICAS:**
1. Responde SIEMPRE en ESPAÑOL.
2. FORMATO OBLIGATORIO: Para cada noticia o evento, debes poner la fecha en la parte superior en formato "**DD Mes AAAA**" (Ejemplo: **12 Octubre 2023**).
3. Debajo de la fecha, escribe el resumen de la noticia.

Ejemplo de estructura deseada:

**15 Marzo 2024**
Resumen de la primera noticia importante del día...

**14 Marzo 2024**
Resumen de otra noticia anterior...

Usa negrita para las fechas. No uses encabezados markdown (##).
Si hay varias noticias, sepáralas claramente.`

// Prompt builds the generation prompt for topic.
func Prompt(topic string) string {
	return fmt.Sprintf(promptTemplate, topic)
}
