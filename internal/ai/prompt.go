package ai

import (
	"fmt"
	"strings"

	"github.com/soporte-insights/backend/internal/analytics"
)

// BuildGeneralPrompt renders the computed bundle into the Spanish
// consultant prompt the dashboard feeds the assistant.
func BuildGeneralPrompt(bundle analytics.Bundle) string {
	kpis := bundle.Summary.Kpis
	if bundle.Summary.Comparison != nil {
		kpis = &bundle.Summary.Comparison.Current
	}
	if kpis == nil {
		kpis = &analytics.Kpis{}
	}

	topCategory := "N/A"
	if names := bundle.Classification.TopCategories.Names(); len(names) > 0 {
		topCategory = names[0]
	}

	topAgent := "N/A"
	if len(bundle.Efficiency.Bars) > 0 {
		topAgent = bundle.Efficiency.Bars[0].Name
	} else if len(bundle.Efficiency.ComparedBars) > 0 {
		topAgent = bundle.Efficiency.ComparedBars[0].Name
	}

	topTopic := "N/A"
	if len(bundle.Text.TopBigrams) > 0 {
		topTopic = bundle.Text.TopBigrams[0].Phrase
	}

	var b strings.Builder
	b.WriteString("Eres un consultor experto en análisis de datos de soporte. ")
	b.WriteString("A continuación se presenta un resumen de un dashboard de análisis de tickets. ")
	b.WriteString("Tu tarea es sintetizar toda la información en un \"Análisis General\" cohesivo en español.\n\n")
	b.WriteString("El análisis debe:\n")
	b.WriteString("1. Comenzar con un resumen ejecutivo de 2-3 frases sobre la situación general.\n")
	b.WriteString("2. Identificar 3-4 hallazgos clave o \"insights\" de diferentes secciones.\n")
	b.WriteString("3. Concluir con 2-3 recomendaciones accionables y concretas.\n\n")
	b.WriteString("Aquí están los datos clave:\n\n")
	b.WriteString("**Resumen Ejecutivo:**\n")
	fmt.Fprintf(&b, "* Total de Tickets: %d\n", kpis.TotalTickets)
	fmt.Fprintf(&b, "* Tiempo Promedio de Resolución: %.1f hs\n", kpis.AvgResolutionHours)
	fmt.Fprintf(&b, "* Tasa de Cumplimiento de SLA: %.1f%%\n\n", bundle.Efficiency.Overall.Current.SlaRate)
	b.WriteString("**Tendencias y Clasificación:**\n")
	fmt.Fprintf(&b, "* La categoría con más tickets es \"%s\".\n", topCategory)
	fmt.Fprintf(&b, "* Los temas más comunes en los asuntos son sobre \"%s\".\n\n", topTopic)
	b.WriteString("**Eficiencia y Patrones:**\n")
	fmt.Fprintf(&b, "* El agente con más tickets gestionados es \"%s\".\n", topAgent)
	b.WriteString("* Existe una correlación entre el número de reasignaciones y el tiempo de resolución.\n")
	if neg := bundle.Correlation.SentimentTime.Negative; neg != nil {
		fmt.Fprintf(&b, "* Los tickets con sentimiento negativo tardan en promedio %.1f hs en resolverse.\n", *neg)
	}
	b.WriteString("\nPor favor, genera el análisis basado estrictamente en esta información.")
	return b.String()
}

// BuildCorrelationPrompt renders the correlation section findings into the
// Spanish synthesis prompt of the original dashboard's patterns view.
func BuildCorrelationPrompt(corr analytics.CorrelationResult) string {
	var slow []string
	for i, c := range corr.TopCategoriesByTime {
		if i == 3 {
			break
		}
		slow = append(slow, c.Name)
	}

	comparison := "menos"
	if corr.SentimentTime.Negative != nil && corr.SentimentTime.Positive != nil &&
		*corr.SentimentTime.Negative > *corr.SentimentTime.Positive {
		comparison = "más"
	}

	var b strings.Builder
	b.WriteString("Sintetiza los siguientes hallazgos de correlación y patrones en un análisis en español (3-4 frases) sobre la eficiencia del proceso de soporte.\n\n")
	b.WriteString("- Se observa una correlación entre el número de reasignaciones y el tiempo de resolución.\n")
	fmt.Fprintf(&b, "- Las categorías que más tardan en resolverse son: %s.\n", strings.Join(slow, ", "))
	fmt.Fprintf(&b, "- Los tickets con sentimiento negativo tardan en promedio %s tiempo en resolverse que los positivos.\n", comparison)
	fmt.Fprintf(&b, "- Se han identificado %d tickets atípicos con métricas muy elevadas.\n\n", len(corr.Outliers))
	b.WriteString("Conecta estos puntos: ¿qué problema general sugieren? (p. ej., problemas de enrutamiento, complejidad en ciertas categorías, impacto de la frustración del cliente, etc.).")
	return b.String()
}
