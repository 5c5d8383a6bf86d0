package quoting

import (
	"strings"

	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
)

// EnsureMandatoryItems paso de upgrade de documentos: garantiza que toda
// cotización cargada tenga sus ítems obligatorios con mandatory_id poblado.
// Se corre una sola vez al cargar; después de este paso el motor nunca
// necesita la rama de matcheo por nombre.
//
// Orden de resolución por concepto: (1) ítem con el mandatory_id correcto,
// (2) documento legado: ítem con el mismo nombre, al que se le estampa el id,
// (3) no existe: se inserta el template al frente de la capa.
func EnsureMandatoryItems(layers []entity.CostLayer, quoteType entity.QuoteType) []entity.CostLayer {
	for _, mi := range entity.MandatoryItems() {
		li := -1
		for i := range layers {
			if layers[i].LayerID == mi.Layer {
				li = i
				break
			}
		}
		if li < 0 {
			continue
		}
		layer := &layers[li]

		found := false
		for i := range layer.Items {
			if layer.Items[i].MandatoryID == mi.ID {
				found = true
				break
			}
		}
		if found {
			continue
		}
		// Documento legado: matchear por nombre y estampar el id.
		migrated := false
		for i := range layer.Items {
			if strings.EqualFold(layer.Items[i].Name, mi.Name) {
				layer.Items[i].Mandatory = true
				layer.Items[i].MandatoryID = mi.ID
				migrated = true
				break
			}
		}
		if migrated {
			continue
		}
		template := entity.BuildMandatoryItem(mi, quoteType)
		layer.Items = append([]entity.CostItem{template}, layer.Items...)
	}
	return layers
}
