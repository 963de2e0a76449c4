package documents

// FilterInput is the reduced form a document is shown to the model in during
// filtering. Models mangle UUIDs, so each document is presented under a small
// integer id and translated back afterwards.
type FilterInput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type listed interface {
	docID() string
	docName() string
	docDescription() string
}

func (d CleanedCreateDocument) docID() string          { return d.ID }
func (d CleanedCreateDocument) docName() string        { return d.DocumentName }
func (d CleanedCreateDocument) docDescription() string { return d.Description }

func (d CleanedFindDocument) docID() string          { return d.ID }
func (d CleanedFindDocument) docName() string        { return d.DocumentName }
func (d CleanedFindDocument) docDescription() string { return d.Description }

// filterInputs numbers the documents 0..n-1 and returns the side table
// mapping each integer id back to the document's UUID. The name shown to the
// model is the document name and description joined by a newline.
func filterInputs[T listed](docs []T) ([]FilterInput, map[int]string) {
	inputs := make([]FilterInput, 0, len(docs))
	idToUUID := make(map[int]string, len(docs))
	for _, doc := range docs {
		id := len(inputs)
		inputs = append(inputs, FilterInput{
			ID:   id,
			Name: doc.docName() + "\n" + doc.docDescription(),
		})
		idToUUID[id] = doc.docID()
	}
	return inputs, idToUUID
}
