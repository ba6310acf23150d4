package wire

import (
	"equipment-rental/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEquipment(r chi.Router, equipmentHandler *adaptor.EquipmentHandler) {
	r.Route("/api/equipment", func(r chi.Router) {
		// POST /api/equipment - Register equipment, minting its barcode
		r.Post("/", equipmentHandler.CreateEquipment)

		r.Get("/", equipmentHandler.ListEquipment)
		r.Get("/{id}", equipmentHandler.GetEquipment)
		r.Get("/barcode/{code}", equipmentHandler.GetEquipmentByBarcode)

		// PUT /api/equipment/{id}/status - Maintenance/broken/retired requests
		r.Put("/{id}/status", equipmentHandler.ChangeEquipmentStatus)
	})

	r.Route("/api/barcodes", func(r chi.Router) {
		r.Post("/", equipmentHandler.GenerateBarcode)
		r.Get("/{code}/validate", equipmentHandler.ValidateBarcode)
	})
}
