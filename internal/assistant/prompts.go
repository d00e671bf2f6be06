package assistant

import (
	"fmt"
	"strings"

	"finanza/internal/core"
)

func quickAnalysisPrompt(summary, lang string) string {
	if lang == LangSpanish {
		return "Analiza brevemente estos datos financieros y dame 3 consejos muy cortos y rapidos (maximo 1 frase cada uno) para mejorar el ahorro: " + summary
	}
	return "Briefly analyze these financial data and give me 3 very short and quick tips (max 1 sentence each) to improve savings: " + summary
}

// TransactionContext renders the list in the compact line format the chat
// prompt embeds, signed by type.
func TransactionContext(txs []core.Transaction) string {
	var b strings.Builder
	for _, t := range txs {
		sign := "-"
		if t.Type == core.Income {
			sign = "+"
		}
		fmt.Fprintf(&b, "- %s: %s (%s) | %s%s\n", t.Date, t.Description, t.Category, sign, core.FormatAmount(t.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

func chatSystemPrompt(txs []core.Transaction, lang, currency string) string {
	data := TransactionContext(txs)
	if lang == LangSpanish {
		return fmt.Sprintf(`Eres un asistente financiero inteligente integrado en una app.
Tienes acceso a la lista de transacciones del usuario.

DATOS DEL USUARIO (Moneda: %s):
%s

INSTRUCCIONES:
1. Responde preguntas especificas sobre gastos (ej: "Cual es mi gasto mas caro?", "Cuanto gaste en comida?").
2. Se conciso, directo y profesional.
3. Si te preguntan algo fuera de los datos, da consejos financieros generales.
4. Usa formato Markdown para resaltar cifras importantes.`, currency, data)
	}
	return fmt.Sprintf(`You are a smart financial assistant embedded in an app.
You have access to the user's transaction list.

USER DATA (Currency: %s):
%s

INSTRUCTIONS:
1. Answer specific questions about spending (e.g., "What is my most expensive expense?", "How much did I spend on food?").
2. Be concise, direct, and professional.
3. If asked about something outside the data, give general financial advice.
4. Use Markdown to highlight important figures.`, currency, data)
}

func advicePrompt(financialContext, lang string) string {
	if lang == LangSpanish {
		return fmt.Sprintf("Contexto Financiero del Usuario: %s\n\nActua como un asesor financiero experto. Piensa paso a paso una estrategia detallada. Responde en Espanol.", financialContext)
	}
	return fmt.Sprintf("User Financial Context: %s\n\nAct as an expert financial advisor. Think step-by-step about a detailed strategy. Respond in English.", financialContext)
}

func searchSystemPrompt(lang string) string {
	if lang == LangSpanish {
		return "Responde la pregunta sobre informacion financiera actual. Cita las URLs de tus fuentes al final. Responde en Espanol."
	}
	return "Answer the question about current financial information. Cite your source URLs at the end. Respond in English."
}
