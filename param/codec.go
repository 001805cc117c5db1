package param

// Codec converts param trees to and from bytes.
type Codec interface {
	Decode(data []byte) (*Node, error)
	Encode(root *Node) ([]byte, error)
}
