// Package discovery declares handler classes and their tool-tagged methods
// and walks a class catalog to find the methods to expose as tools.
//
// Declarations are explicit builder calls:
//
//	class := discovery.NewClass("controllers/echo", provider)
//	class.Method("Echo", discovery.Bind1((*EchoController).Echo)).
//		Tool(discovery.ToolSpec{Name: "echo", Description: "Echo text"}).
//		Params(discovery.Param("text", "string")).
//		Authorize("echo.read")
package discovery
