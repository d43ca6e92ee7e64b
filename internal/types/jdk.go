package types

import "sync"

// Qualified names of the collection declarations in the JDK stub index.
const (
	CollectionName    = "java.util.Collection"
	ListName          = "java.util.List"
	SetName           = "java.util.Set"
	SortedSetName     = "java.util.SortedSet"
	QueueName         = "java.util.Queue"
	MapName           = "java.util.Map"
	SortedMapName     = "java.util.SortedMap"
	ArrayListName     = "java.util.ArrayList"
	HashMapName       = "java.util.HashMap"
	ImmutableListName = "com.google.common.collect.ImmutableList"
	ImmutableMapName  = "com.google.common.collect.ImmutableMap"
)

var (
	jdkOnce  sync.Once
	jdkIndex *MapIndex
)

// JDK returns a shared read-only index with the core library declarations the
// analyzers reason about.
func JDK() Index {
	jdkOnce.Do(func() {
		e, k, v := MakeParam("E"), MakeParam("K"), MakeParam("V")
		jdkIndex = NewMapIndex(
			NewDecl(TopName, nil),
			NewDecl(StringName, nil, Top()),
			NewDecl("java.lang.Integer", nil, Top()),
			NewDecl("java.lang.Long", nil, Top()),
			NewDecl("java.lang.Boolean", nil, Top()),
			NewDecl(IterableName, []string{"T"}, Top()),
			NewDecl(CollectionName, []string{"E"}, MakeNamed(IterableName, e)),
			NewDecl(ListName, []string{"E"}, MakeNamed(CollectionName, e)),
			NewDecl(SetName, []string{"E"}, MakeNamed(CollectionName, e)),
			NewDecl(SortedSetName, []string{"E"}, MakeNamed(SetName, e)),
			NewDecl(QueueName, []string{"E"}, MakeNamed(CollectionName, e)),
			NewDecl(MapName, []string{"K", "V"}, Top()),
			NewDecl(SortedMapName, []string{"K", "V"}, MakeNamed(MapName, k, v)),
			NewDecl(ArrayListName, []string{"E"}, Top(), MakeNamed(ListName, e)),
			NewDecl(HashMapName, []string{"K", "V"}, Top(), MakeNamed(MapName, k, v)),
			NewDecl(ImmutableListName, []string{"E"}, MakeNamed(ListName, e)),
			NewDecl(ImmutableMapName, []string{"K", "V"}, MakeNamed(MapName, k, v)),
		)
	})
	return jdkIndex
}
