// Package results provides semantically named HTTP results for Gin handlers.
//
// A handler returns a Result instead of writing to the context directly:
//
//	router.GET("/orders/:id", results.Handle(func(c *gin.Context) results.Result {
//	    order, err := store.Get(c.Param("id"))
//	    if err != nil {
//	        return results.FromError(err)
//	    }
//	    if order == nil {
//	        return results.NotFound(nil)
//	    }
//	    return results.OK(order)
//	}))
//
// Object results negotiate JSON, XML or YAML from the Accept header.
// Problem documents are always rendered as application/problem+json.
package results
