package parquet

type IndexEntry struct {
	Name string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Url  string `parquet:"name=url, type=BYTE_ARRAY, convertedtype=UTF8"`
}
