package quilt

// Valores asumidos cuando el dato no viene informado.
const (
	DefaultLengthCm    = 200
	DefaultWidthCm     = 150
	DefaultWeightGrams = 2000
	DefaultLocation    = "未知位置"
	DefaultColor       = "未知"
)
