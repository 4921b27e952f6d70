package importer

// Etiquetas exactas de columna de la hoja de inventario (no configurables).
const (
	ColItemNumber    = "编号"
	ColGroup         = "Group"
	ColName          = "名称"
	ColSeason        = "季节"
	ColLength        = "长"
	ColWidth         = "宽"
	ColWeight        = "重量（g）"
	ColFillMaterial  = "填充物"
	ColColor         = "颜色"
	ColBrand         = "品牌"
	ColPurchaseDate  = "购买日期"
	ColLocation      = "放置位置"
	ColPackaging     = "包"
	ColNotes         = "备注"
	ColCurrentPeriod = "使用时间段"
)

// HistoryColumns columnas de usos anteriores, del más reciente al más antiguo.
var HistoryColumns = []string{
	"上次使用", "上上次使用", "上上上次使用", "上^4次",
	"上^5次", "上^6次", "上^7次", "上^8次", "上^9次",
}

// Row una fila de la hoja: etiqueta de columna -> valor crudo de la celda.
type Row map[string]string

// Sheet filas de datos en el orden de origen (sin la fila de encabezados).
type Sheet struct {
	Name    string
	Headers []string
	Rows    []Row
}
