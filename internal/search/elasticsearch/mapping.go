package elasticsearch

// DefaultIndexName is the default Elasticsearch index used for product documents.
const DefaultIndexName = "product"

// buildIndexMapping returns the JSON mapping for the product index. The
// full-text fields use the standard analyzer with ASCII folding so queries
// match Vietnamese text with or without diacritics.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "folding_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "asciifolding"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":          { "type": "long" },
      "name":        { "type": "text", "analyzer": "folding_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
      "department":  { "type": "text", "analyzer": "folding_analyzer", "fields": { "keyword": { "type": "keyword" } } },
      "description": { "type": "text", "analyzer": "folding_analyzer" },
      "address":     { "type": "text", "analyzer": "folding_analyzer" },
      "score":       { "type": "double" },
      "difficulty":  { "type": "double" },
      "reviews":     { "type": "integer" }
    }
  }
}`
}
