// Package quilt contiene las reglas puras de normalización del inventario de edredones:
// fechas y periodos de uso, materiales de relleno, nombres derivados, clasificación de
// estado según ubicación y temporadas. No accede a almacenamiento ni devuelve errores:
// la entrada irreconocible se representa como ausente.
package quilt
