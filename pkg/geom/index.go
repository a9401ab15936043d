package geom

// Index is a 32-bit unsigned index into a dense array (nodes, boxes,
// anchors). Invalid is the universal "no such index" sentinel.
type Index = uint32

// Invalid is the sentinel value meaning "no index" / "none".
const Invalid Index = ^Index(0)
